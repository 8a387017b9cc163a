// Package cpu reports processor topology and SIMD capabilities.
package cpu

import (
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"
)

// Info is a kind of numeric processor information.
type Info int

const (
	InfoSockets Info = iota
	InfoCores
	InfoThreads
	InfoCacheL1
	InfoCacheL2
	InfoCacheL3
	InfoRAM
	InfoSSE41
	InfoAVX2
	InfoAVX512BW
	InfoAVX512VNNI
	InfoAMXBF16
	InfoNEON
)

var infoNames = map[Info]string{
	InfoSockets:    "Sockets",
	InfoCores:      "Cores",
	InfoThreads:    "Threads",
	InfoCacheL1:    "CacheL1",
	InfoCacheL2:    "CacheL2",
	InfoCacheL3:    "CacheL3",
	InfoRAM:        "RAM",
	InfoSSE41:      "SSE41",
	InfoAVX2:       "AVX2",
	InfoAVX512BW:   "AVX512BW",
	InfoAVX512VNNI: "AVX512VNNI",
	InfoAMXBF16:    "AMXBF16",
	InfoNEON:       "NEON",
}

func (i Info) String() string {
	if name, ok := infoNames[i]; ok {
		return name
	}
	return fmt.Sprintf("Info(%d)", int(i))
}

// Desc is a kind of textual processor information.
type Desc int

const (
	DescModel Desc = iota
)

func (d Desc) String() string {
	if d == DescModel {
		return "Model"
	}
	return fmt.Sprintf("Desc(%d)", int(d))
}

// Topology holds what the operating system tells about the machine. Zero
// values mean unknown.
type Topology struct {
	Sockets int64
	Cores   int64
	Threads int64
	CacheL1 int64
	CacheL2 int64
	CacheL3 int64
	RAM     int64
	Model   string
}

var (
	topologyOnce sync.Once
	topology     Topology
)

func loadTopology() Topology {
	topologyOnce.Do(func() {
		topology = readTopology()
		if topology.Threads == 0 {
			topology.Threads = int64(runtime.NumCPU())
		}
		if topology.Cores == 0 {
			topology.Cores = topology.Threads
		}
		if topology.Sockets == 0 {
			topology.Sockets = 1
		}
		if topology.Model == "" {
			topology.Model = runtime.GOARCH
		}
	})
	return topology
}

// Query returns numeric information of the given kind. Capability kinds
// return 1 when the extension is available and 0 otherwise.
func Query(kind Info) int64 {
	t := loadTopology()
	switch kind {
	case InfoSockets:
		return t.Sockets
	case InfoCores:
		return t.Cores
	case InfoThreads:
		return t.Threads
	case InfoCacheL1:
		return t.CacheL1
	case InfoCacheL2:
		return t.CacheL2
	case InfoCacheL3:
		return t.CacheL3
	case InfoRAM:
		return t.RAM
	case InfoSSE41:
		return flag(cpu.X86.HasSSE41)
	case InfoAVX2:
		return flag(cpu.X86.HasAVX2 && cpu.X86.HasFMA)
	case InfoAVX512BW:
		return flag(cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW)
	case InfoAVX512VNNI:
		return flag(cpu.X86.HasAVX512VNNI)
	case InfoAMXBF16:
		return flag(cpu.X86.HasAVX512BF16)
	case InfoNEON:
		return flag(cpu.ARM64.HasASIMD)
	}
	return 0
}

// Describe returns textual information of the given kind.
func Describe(kind Desc) string {
	if kind == DescModel {
		return loadTopology().Model
	}
	return ""
}

// Alignment returns the widest SIMD register size of the running processor in
// bytes, which is the preferred row alignment.
func Alignment() int {
	switch {
	case cpu.X86.HasAVX512F:
		return 64
	case cpu.X86.HasAVX2:
		return 32
	}
	return 16
}

func flag(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

package simd

import (
	"fmt"
	"strings"

	"github.com/simdkit/simd/pkg/cpu"
)

// SysInfo describes the kernel library, the CPU and the available SIMD
// extensions on one line.
func (c *Context) SysInfo() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Simd Library: %s", c.LibraryVersion())
	fmt.Fprintf(&sb, "; CPU: %s", c.CpuDesc(cpu.DescModel))
	fmt.Fprintf(&sb, "; System sockets: %d, Cores: %d, Threads: %d",
		c.CpuInfo(cpu.InfoSockets), c.CpuInfo(cpu.InfoCores), c.CpuInfo(cpu.InfoThreads))
	fmt.Fprintf(&sb, "; Cache L1D: %.0f KB, L2: %.0f KB, L3: %.1f MB, RAM: %.1f GB",
		float64(c.CpuInfo(cpu.InfoCacheL1))/1024,
		float64(c.CpuInfo(cpu.InfoCacheL2))/1024,
		float64(c.CpuInfo(cpu.InfoCacheL3))/(1<<20),
		float64(c.CpuInfo(cpu.InfoRAM))/(1<<30))

	sb.WriteString("; Available SIMD:")
	extensions := []struct {
		kind cpu.Info
		name string
	}{
		{cpu.InfoAMXBF16, " AMX-BF16 AMX-INT8 AVX-512VBF16"},
		{cpu.InfoAVX512VNNI, " AVX-512VNNI"},
		{cpu.InfoAVX512BW, " AVX-512BW AVX-512F"},
		{cpu.InfoAVX2, " AVX2 FMA AVX"},
		{cpu.InfoSSE41, " SSE4.1 SSSE3 SSE3 SSE2 SSE"},
		{cpu.InfoNEON, " NEON"},
	}
	for _, e := range extensions {
		if c.CpuInfo(e.kind) > 0 {
			sb.WriteString(e.name)
		}
	}
	return sb.String()
}

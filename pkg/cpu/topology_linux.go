package cpu

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const sysCPU = "/sys/devices/system/cpu/cpu0/cache"

func readTopology() Topology {
	var t Topology
	readCPUInfo(&t)
	readCaches(&t)
	t.RAM = readMemTotal()
	return t
}

func readCPUInfo(t *Topology) {
	f, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return
	}
	defer f.Close()

	sockets := map[string]struct{}{}
	var threads int64
	s := bufio.NewScanner(f)
	for s.Scan() {
		key, value, ok := strings.Cut(s.Text(), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "processor":
			threads++
		case "physical id":
			sockets[value] = struct{}{}
		case "model name":
			if t.Model == "" {
				t.Model = value
			}
		case "cpu cores":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil && t.Cores == 0 {
				t.Cores = n
			}
		}
	}

	t.Threads = threads
	if len(sockets) > 0 {
		t.Sockets = int64(len(sockets))
		t.Cores *= t.Sockets
	}
}

func readCaches(t *Topology) {
	dirs, err := filepath.Glob(filepath.Join(sysCPU, "index*"))
	if err != nil {
		return
	}
	for _, dir := range dirs {
		level := readSysString(filepath.Join(dir, "level"))
		kind := readSysString(filepath.Join(dir, "type"))
		size := parseCacheSize(readSysString(filepath.Join(dir, "size")))
		switch {
		case level == "1" && kind == "Data":
			t.CacheL1 = size
		case level == "2":
			t.CacheL2 = size
		case level == "3":
			t.CacheL3 = size
		}
	}
}

func readMemTotal() int64 {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) >= 2 && fields[0] == "MemTotal:" {
			kb, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return 0
			}
			return kb * 1024
		}
	}
	return 0
}

func readSysString(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// parseCacheSize parses sysfs sizes such as "32K" or "8M".
func parseCacheSize(s string) int64 {
	if s == "" {
		return 0
	}
	mult := int64(1)
	switch s[len(s)-1] {
	case 'K':
		mult, s = 1024, s[:len(s)-1]
	case 'M':
		mult, s = 1024*1024, s[:len(s)-1]
	case 'G':
		mult, s = 1024*1024*1024, s[:len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n * mult
}

// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package perf

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// HostInfo describes the machine the measurements were taken on.
type HostInfo struct {
	OS, Arch  string
	NumCPU    int
	GoVersion string

	// Features lists the SIMD extensions reported by the CPU, e.g. "avx2" or "asimd".
	// The kernels here don't use them, but they explain differences across machines
	// since the Go compiler may.
	Features []string
}

// DescribeHost returns the HostInfo of the current machine.
func DescribeHost() HostInfo {
	info := HostInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			has  bool
		}{
			{"sse41", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
			{"avx512vnni", cpu.X86.HasAVX512VNNI},
		} {
			if f.has {
				info.Features = append(info.Features, f.name)
			}
		}
	case "arm64":
		for _, f := range []struct {
			name string
			has  bool
		}{
			{"asimd", cpu.ARM64.HasASIMD},
			{"asimddp", cpu.ARM64.HasASIMDDP},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
		} {
			if f.has {
				info.Features = append(info.Features, f.name)
			}
		}
	}
	return info
}

// String implements fmt.Stringer.
func (h HostInfo) String() string {
	features := "none"
	if len(h.Features) > 0 {
		features = strings.Join(h.Features, ",")
	}
	return fmt.Sprintf("%s/%s, %d CPUs, %s, features: %s", h.OS, h.Arch, h.NumCPU, h.GoVersion, features)
}

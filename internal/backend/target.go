// Package backend selects the hardware target a kernel is specialized for.
//
// Targets never change numeric results beyond precision tolerance; they only
// choose how the inner loops are blocked (scalar, 16/32/64-byte lanes, GPU).
package backend

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/born-ml/layers/internal/tensor"
)

// Target identifies a hardware specialization.
type Target uint8

// Supported targets.
const (
	TargetScalar Target = iota
	TargetSSE2
	TargetAVX2
	TargetAVX512
	TargetNEON
	TargetWebGPU
)

// Environment overrides, checked by Detect.
const (
	EnvNoSIMD = "BORN_NO_SIMD" // any non-empty value other than "0" forces scalar
	EnvTarget = "BORN_TARGET"  // explicit target name
)

var targetNames = [...]string{
	TargetScalar: "scalar",
	TargetSSE2:   "sse2",
	TargetAVX2:   "avx2",
	TargetAVX512: "avx512",
	TargetNEON:   "neon",
	TargetWebGPU: "webgpu",
}

// String returns the lower-case target name.
func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("target(%d)", t)
}

// ParseTarget parses a target name. "auto" resolves to Detect().
func ParseTarget(s string) (Target, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "auto" {
		return Detect(), nil
	}
	if t, ok := lookupTarget(name); ok {
		return t, nil
	}
	return 0, fmt.Errorf("unknown target %q", s)
}

func lookupTarget(name string) (Target, bool) {
	for t, n := range targetNames {
		if n == name {
			return Target(t), true
		}
	}
	return 0, false
}

// VectorBytes returns the register width the target blocks its loops by.
// Scalar and GPU targets return 0.
func (t Target) VectorBytes() int {
	switch t {
	case TargetSSE2, TargetNEON:
		return 16
	case TargetAVX2:
		return 32
	case TargetAVX512:
		return 64
	default:
		return 0
	}
}

// Lanes returns how many elements of dtype fit in one vector of the target.
// Scalar returns 1.
func (t Target) Lanes(dtype tensor.DataType) int {
	if w := t.VectorBytes(); w > 0 {
		return w / dtype.Size()
	}
	return 1
}

// IsCPU reports whether the target runs on the host CPU.
func (t Target) IsCPU() bool {
	return t != TargetWebGPU
}

// Detect returns the widest CPU target this machine supports, honoring the
// BORN_NO_SIMD and BORN_TARGET environment overrides.
func Detect() Target {
	if v := os.Getenv(EnvNoSIMD); v != "" && v != "0" {
		return TargetScalar
	}
	if t, ok := lookupTarget(strings.ToLower(strings.TrimSpace(os.Getenv(EnvTarget)))); ok {
		return t
	}
	return detectCPU()
}

func detectCPU() Target {
	switch runtime.GOARCH {
	case "amd64":
		switch {
		case cpu.X86.HasAVX512F:
			return TargetAVX512
		case cpu.X86.HasAVX2:
			return TargetAVX2
		case cpu.X86.HasSSE2:
			return TargetSSE2
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			return TargetNEON
		}
	}
	return TargetScalar
}

// CPUTargets returns every CPU target. The lane-blocked kernels are portable
// Go, so all of them run on any machine; Detect only picks the default.
func CPUTargets() []Target {
	return []Target{TargetScalar, TargetSSE2, TargetAVX2, TargetAVX512, TargetNEON}
}

// Features describes the CPU features relevant to target detection.
func Features() map[string]bool {
	switch runtime.GOARCH {
	case "amd64":
		return map[string]bool{
			"sse2":     cpu.X86.HasSSE2,
			"avx":      cpu.X86.HasAVX,
			"avx2":     cpu.X86.HasAVX2,
			"fma":      cpu.X86.HasFMA,
			"avx512f":  cpu.X86.HasAVX512F,
			"avx512bw": cpu.X86.HasAVX512BW,
		}
	case "arm64":
		return map[string]bool{
			"asimd":   cpu.ARM64.HasASIMD,
			"asimdhp": cpu.ARM64.HasASIMDHP,
			"sve":     cpu.ARM64.HasSVE,
		}
	default:
		return map[string]bool{}
	}
}

package triplet

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		t    Triplet
		kind error // nil means valid
	}{
		{"linux gnu", Triplet{CPU: "x86_64", Kernel: "linux", OS: "gnu"}, nil},
		{"linux android", Triplet{CPU: "aarch64", Kernel: "linux", OS: "android21"}, nil},
		{"linux ohos", Triplet{CPU: "aarch64", Kernel: "linux", OS: "ohos"}, nil},
		{"uclinux", Triplet{CPU: "m68k", Kernel: "uclinux", OS: "uclibc"}, nil},
		{"ironclad", Triplet{CPU: "x86_64", Kernel: "ironclad", OS: "mlibc"}, nil},
		{"managarm kernel", Triplet{CPU: "x86_64", Kernel: "managarm", OS: "kernel"}, nil},
		{"windows msvc", Triplet{CPU: "x86_64", Kernel: "windows", OS: "msvc"}, nil},
		{"kfreebsd", Triplet{CPU: "x86_64", Kernel: "kfreebsd", OS: "gnu"}, nil},
		{"vxworks spe", Triplet{CPU: "powerpc", Kernel: "vxworks", OS: "spe"}, nil},
		{"os2 emx", Triplet{CPU: "i386", Kernel: "os2", OS: "emx"}, nil},
		{"rtmk nova", Triplet{CPU: "x86_64", Kernel: "rtmk", OS: "nova"}, nil},
		{"any kernel with eabi", Triplet{CPU: "arm", Kernel: "foo", OS: "eabi"}, nil},
		{"none kernel bare object", Triplet{CPU: "arm", Kernel: "none", ObjectFormat: "elf"}, nil},
		{"no kernel", Triplet{CPU: "sparc", OS: "sunos4.1.1"}, nil},
		{"object format only", Triplet{CPU: "mips", ObjectFormat: "elf32"}, nil},
		{"uefi", Triplet{CPU: "x86_64", OS: "uefi"}, nil},
		{"javascript ghcjs", Triplet{CPU: "javascript", OS: "ghcjs"}, nil},
		{"strict sco", Triplet{CPU: "i386", OS: "sco3.2v5"}, nil},

		{"blank", Triplet{CPU: "x86_64", Kernel: "linux"}, ErrBlankOSRequiresObjectFormat},
		{"delimiter in os", Triplet{CPU: "x86_64", OS: "linux-gnu"}, ErrOSNotRecognized},
		{"unknown os", Triplet{CPU: "x86_64", OS: "foo"}, ErrOSNotRecognized},
		{"unsupported sco", Triplet{CPU: "i386", OS: "sco3.2v3"}, ErrOSNotRecognized},
		{"bad object format", Triplet{CPU: "powerpc", ObjectFormat: "xcoff"}, ErrObjectFormatNotRecognized},
		{"javascript elsewhere", Triplet{CPU: "javascript", OS: "none"}, ErrCPUIncompatibleWithOS},
		{"ghcjs elsewhere", Triplet{CPU: "x86_64", OS: "ghcjs"}, ErrCPUIncompatibleWithOS},
		{"bare libc", Triplet{CPU: "x86_64", OS: "musl"}, ErrLibcNeedsExplicitKernel},
		{"bare newlib", Triplet{CPU: "arm", OS: "newlib"}, ErrLibcNeedsExplicitKernel},
		{"bare kernel os", Triplet{CPU: "x86_64", OS: "kernel"}, ErrOSNeedsExplicitKernel},
		{"linux kernel os", Triplet{CPU: "x86_64", Kernel: "linux", OS: "kernel"}, ErrKernelDoesNotSupportOS},
		{"msvc without windows", Triplet{CPU: "x86_64", Kernel: "linux", OS: "msvc"}, ErrOSNeedsWindows},
		{"bare msvc", Triplet{CPU: "x86_64", OS: "msvc"}, ErrOSNeedsWindows},
		{"windows gnu", Triplet{CPU: "x86_64", Kernel: "windows", OS: "gnu"}, ErrKernelNotKnownToWorkWithOS},
		{"unknown kernel", Triplet{CPU: "x86_64", Kernel: "foo", OS: "gnu"}, ErrKernelNotKnownToWorkWithOS},
		{"linux with object format", Triplet{CPU: "x86_64", Kernel: "linux", OS: "gnu", ObjectFormat: "elf"}, ErrKernelNotKnownToWorkWithOS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.t)
			if tt.kind == nil {
				if err != nil {
					t.Errorf("validate(%+v) = %v, want nil", tt.t, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validate(%+v) = nil, want %v", tt.t, tt.kind)
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("validate(%+v) = %v, want %v", tt.t, err, tt.kind)
			}
		})
	}
}

func TestValidateReportsComponents(t *testing.T) {
	err := validate(Triplet{CPU: "x86_64", Kernel: "linux", OS: "kernel"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if err.CPU != "x86_64" || err.Kernel != "linux" || err.OS != "kernel" {
		t.Errorf("error components = %q/%q/%q", err.CPU, err.Kernel, err.OS)
	}
}

func TestKernelOSCompatEndsInRejection(t *testing.T) {
	last := kernelOSCompat[len(kernelOSCompat)-1]
	if last.kind != ErrKernelNotKnownToWorkWithOS || !last.when.Match("a-b-c") {
		t.Errorf("last compat rule = %v => %v", last.when, last.kind)
	}
}

package triplet

import (
	"strings"

	"github.com/FocuswithJustin/configsub/core/glob"
)

// knownSystems lists the operating systems, libcs and ABIs accepted in the
// OS position. The blank OS is handled separately.
var knownSystems = glob.NewSet(
	// libc and ABI names
	"llvm*", "musl*", "newlib*", "relibc*", "uclibc*", "dietlibc*", "mlibc*",
	"eabi*", "gnueabi*",
	"simlinux", "simwindows", "spe",
	"ghcjs",

	// operating systems
	"gnu*", "android*", "bsd*", "mach*", "minix*", "genix*", "ultrix*", "irix*",
	"*vms*", "esix*", "aix*", "cnk*", "sunos", "sunos[34]*",
	"hpux*", "unos*", "osf*", "luna*", "dgux*", "auroraux*", "solaris*",
	"sym*", "plan9*", "psp*", "sim*", "xray*", "os68k*", "v88r*",
	"hiux*", "abug", "nacl*", "netware*", "windows*",
	"os9*", "macos*", "osx*", "ios*", "tvos*", "watchos*",
	"mpw*", "magic*", "mmixware*", "mon960*", "lnews*",
	"amigaos*", "amigados*", "msdos*", "newsos*", "unicos*",
	"aos*", "aros*", "cloudabi*", "sortix*", "twizzler*",
	"nindy*", "vxsim*", "vxworks*", "ebmon*", "hms*", "mvs*",
	"clix*", "riscos*", "uniplus*", "iris*", "isc*", "rtu*", "xenix*",
	"mirbsd*", "netbsd*", "dicos*", "openedition*", "ose*",
	"bitrig*", "openbsd*", "secbsd*", "solidbsd*", "libertybsd*", "os108*",
	"ekkobsd*", "freebsd*", "riscix*", "lynxos*", "os400*",
	"bosx*", "nextstep*", "cxux*", "oabi*",
	"ptx*", "ecoff*", "winnt*", "domain*", "vsta*",
	"udi*", "lites*", "ieee*", "go32*", "aux*", "hcos*",
	"chorusrdb*", "cegcc*", "glidix*", "serenity*",
	"cygwin*", "msys*", "moss*", "proelf*", "rtems*",
	"midipix*", "mingw32*", "mingw64*", "mint*",
	"uxpv*", "beos*", "mpeix*", "udk*", "moxiebox*",
	"interix*", "uwin*", "mks*", "rhapsody*", "darwin*",
	"openstep*", "oskit*", "conix*", "pw32*", "nonstopux*",
	"chaos*", "tops10*", "tenex*", "tops20*", "its*",
	"os2*", "vos*", "palmos*", "uclinux*", "nucleus*", "morphos*",
	"scout*", "superux*", "sysv*", "rtmk*", "tpf*", "windiss*",
	"powermax*", "dnix*", "nx6", "nx7", "sei*", "dragonfly*",
	"skyos*", "haiku*", "rdos*", "toppers*", "drops*", "es*",
	"onefs*", "tirtos*", "phoenix*", "fuchsia*", "redox*", "bme*",
	"midnightbsd*", "amdhsa*", "unleashed*", "emscripten*", "wasi*",
	"nsk*", "powerunix*", "genode*", "zvmoe*", "qnx*", "emx*", "zephyr*",
	"fiwix*", "cos*", "mbr*", "ironclad*", "nova*", "ohos*", "tock*",
	"chorusos*", "psos*",

	// strict SCO versions
	"sco3.2v2", "sco3.2v[4-9]*", "sco5v6*",

	"uefi",
	"none",
	"kernel*", "msvc*",
)

var objectFormats = glob.NewSet("aout*", "coff*", "elf*", "pe*")

// compatRule classifies a "kernel-os-obj" combination. A nil kind accepts it.
type compatRule struct {
	when glob.Set
	kind error
}

// kernelOSCompat is evaluated in order; the final entry rejects everything
// no earlier entry accepted.
var kernelOSCompat = []compatRule{
	{glob.NewSet(
		"linux-gnu*-", "linux-android*-", "linux-dietlibc*-", "linux-llvm*-",
		"linux-mlibc*-", "linux-musl*-", "linux-newlib*-", "linux-relibc*-",
		"linux-uclibc*-", "linux-ohos*-",
	), nil},
	{glob.NewSet("uclinux-uclibc*-", "uclinux-gnu*-"), nil},
	{glob.NewSet("ironclad-mlibc*-"), nil},
	{glob.NewSet("managarm-mlibc*-", "managarm-kernel*-"), nil},
	{glob.NewSet("windows*-msvc*-"), nil},
	{glob.NewSet(
		"-dietlibc*-", "-llvm*-", "-mlibc*-", "-musl*-", "-newlib*-",
		"-relibc*-", "-uclibc*-",
	), ErrLibcNeedsExplicitKernel},
	{glob.NewSet("-kernel*-"), ErrOSNeedsExplicitKernel},
	{glob.NewSet("*-kernel*-"), ErrKernelDoesNotSupportOS},
	{glob.NewSet("*-msvc*-"), ErrOSNeedsWindows},
	{glob.NewSet("kfreebsd*-gnu*-", "knetbsd*-gnu*-", "netbsd*-gnu*-", "kopensolaris*-gnu*-"), nil},
	{glob.NewSet("vxworks-simlinux-", "vxworks-simwindows-", "vxworks-spe-"), nil},
	{glob.NewSet("nto-qnx*-"), nil},
	{glob.NewSet("os2-emx-"), nil},
	{glob.NewSet("rtmk-nova-"), nil},
	{glob.NewSet("*-eabi*-", "*-gnueabi*-"), nil},
	{glob.NewSet("none--*"), nil},
	{glob.NewSet("-*-"), nil},
	{glob.NewSet("--*"), nil},
	{glob.NewSet("*"), ErrKernelNotKnownToWorkWithOS},
}

// validate checks t for cross-field consistency. The first failing check
// determines the error.
func validate(t Triplet) *Error {
	if err := checkOS(t); err != nil {
		return err
	}
	if t.ObjectFormat != "" && !objectFormats.Match(t.ObjectFormat) {
		return newError(ErrObjectFormatNotRecognized, t)
	}
	if (t.CPU == "javascript") != (t.OS == "ghcjs") {
		return newError(ErrCPUIncompatibleWithOS, t)
	}

	subject := joinFields(t.Kernel, t.OS, t.ObjectFormat)
	for _, r := range kernelOSCompat {
		if r.when.Match(subject) {
			if r.kind != nil {
				return newError(r.kind, t)
			}
			return nil
		}
	}
	return newError(ErrKernelNotKnownToWorkWithOS, t)
}

func checkOS(t Triplet) *Error {
	switch {
	case t.OS == "":
		if t.ObjectFormat == "" {
			return newError(ErrBlankOSRequiresObjectFormat, t)
		}
		return nil
	case strings.Contains(t.OS, Delimiter):
		// Would not survive a second canonicalization.
		return newError(ErrOSNotRecognized, t)
	case knownSystems.Match(t.OS):
		return nil
	}
	return newError(ErrOSNotRecognized, t)
}

package triplet

import (
	"strings"

	"github.com/FocuswithJustin/configsub/core/glob"
)

// machineAlias rewrites a CPU name. An empty vendor keeps the vendor that
// was supplied (or "unknown" for a bare machine).
type machineAlias struct {
	when   glob.Set
	cpu    string // "" keeps the matched name
	vendor string
}

// bareMachineAliases apply to a basic machine with no vendor part.
var bareMachineAliases = []machineAlias{
	{glob.NewSet("w89k"), "hppa1.1", "winbond"},
	{glob.NewSet("op50n", "op60c"), "hppa1.1", "oki"},
	{glob.NewSet("orion105"), "clipper", "highlevel"},
	{glob.NewSet("i*86", "x86_64"), "", "pc"},
	{glob.NewSet("pc98"), "i386", "pc"},
	{glob.NewSet("x64", "amd64"), "x86_64", "pc"},
}

// boardAliases are board and model names used in the CPU position. They
// always imply their manufacturer, so the vendor is overridden even when one
// is supplied.
var boardAliases = []machineAlias{
	{glob.NewSet("w89k"), "hppa1.1", "winbond"},
	{glob.NewSet("op50n", "op60c"), "hppa1.1", "oki"},
	{glob.NewSet("orion105"), "clipper", "highlevel"},
	{glob.NewSet("pc98"), "i386", ""},
	{glob.NewSet("x64", "amd64"), "x86_64", ""},
}

type vendorAlias struct {
	when   glob.Set
	vendor string
}

var vendorAliases = []vendorAlias{
	{glob.NewSet("digital*"), "dec"},
	{glob.NewSet("commodore*"), "cbm"},
}

// normalizeMachine splits a basic machine into CPU and vendor and applies
// the machine and vendor alias tables.
func normalizeMachine(basicMachine string) (cpu, vendor string) {
	name, supplied, hasVendor := strings.Cut(basicMachine, Delimiter)

	table := boardAliases
	if !hasVendor {
		table = bareMachineAliases
	}

	cpu, vendor = name, supplied
	for _, a := range table {
		if a.when.Match(name) {
			if a.cpu != "" {
				cpu = a.cpu
			}
			if a.vendor != "" {
				vendor = a.vendor
			}
			break
		}
	}

	if vendor == "" {
		vendor = unknownVendor
	}
	for _, a := range vendorAliases {
		if a.when.Match(vendor) {
			vendor = a.vendor
			break
		}
	}
	return cpu, vendor
}

type defaultOSRule struct {
	when glob.Set // matched against "cpu-vendor"
	os   string   // a basic OS, fed through normalizeOS
}

// machineDefaultOS picks the OS when an identifier names only a machine.
// The last entry matches everything.
var machineDefaultOS = []defaultOSRule{
	{glob.NewSet("*-acorn"), "riscix1.2"},
	{glob.NewSet("arm*-rebel"), "linux-gnu"},
	{glob.NewSet("arm*-semi"), "aout"},
	{glob.NewSet("c4x-*", "tic4x-*"), "coff"},
	{glob.NewSet("c8051-*"), "elf"},
	{glob.NewSet("clipper-intergraph"), "clix"},
	{glob.NewSet("hexagon-*"), "elf"},
	{glob.NewSet("tic54x-*", "tic55x-*", "tic6x-*"), "coff"},
	{glob.NewSet("pdp10-*"), "tops20"},
	{glob.NewSet("pdp11-*"), "none"},
	{glob.NewSet("*-dec", "vax-*"), "ultrix4.2"},
	{glob.NewSet("m68*-apollo"), "domain"},
	{glob.NewSet("i386-sun"), "sunos4.0.2"},
	{glob.NewSet("m68000-sun"), "sunos3"},
	{glob.NewSet("m68*-cisco"), "aout"},
	{glob.NewSet("mep-*"), "elf"},
	{glob.NewSet("mips*-cisco"), "elf"},
	{glob.NewSet("mips*-*", "nanomips*-*"), "elf"},
	{glob.NewSet("or32-*"), "coff"},
	{glob.NewSet("*-tti"), "sysv3"},
	{glob.NewSet("sparc-*", "*-sun"), "sunos4.1.1"},
	{glob.NewSet("pru-*"), "elf"},
	{glob.NewSet("*-be"), "beos"},
	{glob.NewSet("*-ibm"), "aix"},
	{glob.NewSet("*-knuth"), "mmixware"},
	{glob.NewSet("*-wec", "*-winbond", "*-oki"), "proelf"},
	{glob.NewSet("*-hp"), "hpux"},
	{glob.NewSet("*-hitachi"), "hiux"},
	{glob.NewSet("i860-*", "*-att", "*-ncr", "*-altos", "*-motorola", "*-convergent"), "sysv"},
	{glob.NewSet("*-cbm"), "amigaos"},
	{glob.NewSet("*-dg"), "dgux"},
	{glob.NewSet("*-dolphin"), "sysv3"},
	{glob.NewSet("m68k-ccur"), "rtu"},
	{glob.NewSet("m88k-omron*"), "luna"},
	{glob.NewSet("*-next"), "nextstep"},
	{glob.NewSet("*-sequent"), "ptx"},
	{glob.NewSet("*-crds"), "unos"},
	{glob.NewSet("*-ns"), "genix"},
	{glob.NewSet("i370-*"), "mvs"},
	{glob.NewSet("*-gould"), "sysv"},
	{glob.NewSet("*-highlevel", "*-encore"), "bsd"},
	{glob.NewSet("*-masscomp"), "rtu"},
	{glob.NewSet("f30[01]-fujitsu", "f700-fujitsu"), "uxpv"},
	{glob.NewSet("*-rom68k", "*-*bug"), "coff"},
	{glob.NewSet("*-apple"), "macos"},
	{glob.NewSet("*-atari*"), "mint"},
	{glob.NewSet("*-wrs"), "vxworks"},
	{glob.NewSet("*"), "none"},
}

// defaultOS returns the basic OS implied by a machine.
func defaultOS(cpu, vendor string) string {
	machine := joinFields(cpu, vendor)
	for _, r := range machineDefaultOS {
		if r.when.Match(machine) {
			return r.os
		}
	}
	return "none"
}

type vendorRefinement struct {
	when   glob.Set // matched against "cpu-os"
	vendor string
}

// unknownVendorRefinements pick the logical manufacturer for an "unknown"
// vendor once the CPU and OS are known.
var unknownVendorRefinements = []vendorRefinement{
	{glob.NewSet("*-riscix*"), "acorn"},
	{glob.NewSet("*-sunos*", "*-solaris*"), "sun"},
	{glob.NewSet("*-cnk*", "*-aix*"), "ibm"},
	{glob.NewSet("*-beos*"), "be"},
	{glob.NewSet("*-hpux*", "*-mpeix*"), "hp"},
	{glob.NewSet("*-hiux*", "*-hms*"), "hitachi"},
	{glob.NewSet("*-unos*"), "crds"},
	{glob.NewSet("*-dgux*"), "dg"},
	{glob.NewSet("*-luna*"), "omron"},
	{glob.NewSet("*-genix*"), "ns"},
	{glob.NewSet("*-clix*"), "intergraph"},
	{glob.NewSet("*-mvs*", "*-opened*", "*-os400*", "*-tpf*"), "ibm"},
	{glob.NewSet("s390-*", "s390x-*"), "ibm"},
	{glob.NewSet("*-ptx*"), "sequent"},
	{glob.NewSet("*-vxsim*", "*-vxworks*", "*-windiss*"), "wrs"},
	{glob.NewSet("*-aux*", "*-mpw*", "*-macos*"), "apple"},
	{glob.NewSet("*-mint", "*-mint[0-9]*", "*-MiNT", "*-MiNT[0-9]*"), "atari"},
	{glob.NewSet("*-vos*"), "stratus"},
}

// refineVendor replaces an "unknown" vendor with the one implied by the CPU
// and OS, if any.
func refineVendor(cpu, vendor, os string) string {
	if vendor != unknownVendor {
		return vendor
	}
	subject := joinFields(cpu, os)
	for _, r := range unknownVendorRefinements {
		if r.when.Match(subject) {
			return r.vendor
		}
	}
	return vendor
}

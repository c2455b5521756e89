// Command config-sub canonicalizes target triplets such as amd64-linux into
// the full cpu-vendor-kernel-os form used by build systems.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/configsub/core/triplet"
	"github.com/FocuswithJustin/configsub/internal/config"
	"github.com/FocuswithJustin/configsub/internal/logging"
	"github.com/FocuswithJustin/configsub/internal/store"
)

const (
	progName  = "config-sub"
	version   = "0.1.0"
	timestamp = "2025-07-10"
)

const usage = `Usage: config-sub [OPTION] CPU-MFR-OPSYS or ALIAS

Canonicalize a configuration name.

Options:
  -h, --help          print this help, then exit
  -t, --time-stamp    print date of last modification, then exit
  -v, --version       print version number, then exit
      --config=FILE   read settings from a YAML file
      --cache-db=FILE remember results in a SQLite database
      --log-level=LVL debug, info, warn or error (default warn)
      --log-format=F  text or json (default text)

Pass - as the argument to read one name per line from standard input.`

const versionText = `config-sub (configsub ` + version + `) ` + timestamp + `

This is free software; see the source for copying conditions.  There is NO
warranty; not even for MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.`

// CLI defines the options parsed after the informational flags are handled.
type CLI struct {
	Config    string `name:"config" help:"YAML settings file" type:"path"`
	CacheDB   string `name:"cache-db" help:"Persist results in this SQLite database" type:"path"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" help:"Log format (text, json)"`

	Identifiers []string `arg:"" optional:"" name:"identifier" help:"CPU-MFR-OPSYS or ALIAS, or - for standard input"`
}

// lookupEnv is replaced in tests.
var lookupEnv = os.LookupEnv

type action int

const (
	actionRun action = iota
	actionHelp
	actionVersion
	actionTimeStamp
	actionLocal
)

// valueFlags take an argument, either inline after "=" or as the next word.
var valueFlags = map[string]bool{
	"--config":     true,
	"--cache-db":   true,
	"--log-level":  true,
	"--log-format": true,
}

// scanOptions walks args the way config.sub does: the first informational
// option wins, and option processing stops at "--", "-" or the first
// operand. It returns the arguments left for kong, with "--" inserted
// before the first operand.
func scanOptions(args []string) (action, []string, error) {
	out := make([]string, 0, len(args)+1)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return actionRun, append(out, args[i:]...), nil
		case arg == "-t" || strings.HasPrefix(arg, "--time"):
			return actionTimeStamp, nil, nil
		case arg == "-v" || arg == "--version":
			return actionVersion, nil, nil
		case arg == "-h" || strings.HasPrefix(arg, "--h"):
			return actionHelp, nil, nil
		case arg != "-" && strings.HasPrefix(arg, "-"):
			name, _, inline := strings.Cut(arg, "=")
			if !valueFlags[name] {
				return actionRun, nil, fmt.Errorf("invalid option %s", arg)
			}
			out = append(out, arg)
			if !inline && i+1 < len(args) {
				i++
				out = append(out, args[i])
			}
		case triplet.IsLocal(arg):
			return actionLocal, []string{arg}, nil
		default:
			out = append(out, "--")
			return actionRun, append(out, args[i:]...), nil
		}
	}
	return actionRun, out, nil
}

// usageError prints msg with the standard help hint and returns exit code 1.
func usageError(w io.Writer, msg string) int {
	fmt.Fprintf(w, "%s: %s\nTry '%s --help' for more information.\n", progName, msg, progName)
	return 1
}

// loadConfig layers defaults, the config file, the environment and flags.
func loadConfig(cli *CLI) (config.Config, error) {
	cfg := config.Default()
	if cli.Config != "" {
		var err error
		if cfg, err = config.Load(cli.Config); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(lookupEnv); err != nil {
		return cfg, err
	}
	if cli.CacheDB != "" {
		cfg.Cache.DB = cli.CacheDB
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}
	return cfg, cfg.Validate()
}

type resolverFunc func(string) (string, error)

func (f resolverFunc) Canonicalize(id string) (string, error) { return f(id) }

func newResolver(size int) store.Resolver {
	if size == 0 {
		return resolverFunc(triplet.Canonicalize)
	}
	return triplet.NewCanonicalizer(size)
}

// readIdentifiers returns the non-blank lines of r, trimmed.
func readIdentifiers(r io.Reader) ([]string, error) {
	var ids []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			ids = append(ids, line)
		}
	}
	return ids, sc.Err()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	act, rest, err := scanOptions(args)
	if err != nil {
		return usageError(stderr, err.Error())
	}
	switch act {
	case actionHelp:
		fmt.Fprintln(stdout, usage)
		return 0
	case actionVersion:
		fmt.Fprintln(stdout, versionText)
		return 0
	case actionTimeStamp:
		fmt.Fprintln(stdout, timestamp)
		return 0
	case actionLocal:
		fmt.Fprintln(stdout, rest[0])
		return 0
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name(progName),
		kong.Description("Canonicalize a configuration name."),
		kong.NoDefaultHelp(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}
	if _, err := parser.Parse(rest); err != nil {
		return usageError(stderr, err.Error())
	}

	switch len(cli.Identifiers) {
	case 0:
		return usageError(stderr, "missing argument")
	case 1:
	default:
		return usageError(stderr, "too many arguments")
	}

	cfg, err := loadConfig(&cli)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", progName, err)
		return 1
	}
	level, format := cfg.Logging()
	logging.InitLogger(level, format, stderr)
	ctx := logging.WithRunID(context.Background(), logging.NewRunID())

	var results *store.Store
	if cfg.Cache.DB != "" {
		results, err = store.Open(ctx, cfg.Cache.DB)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progName, err)
			return 1
		}
		defer results.Close()
		logging.CacheEvent(ctx, "open", "path", results.Path(), "ruleset", results.Ruleset())

		removed, err := results.Purge(ctx)
		if err != nil {
			logging.WarnContext(ctx, "purge failed", "error", err)
		} else if removed > 0 {
			logging.CacheEvent(ctx, "purge", "removed", removed)
		}
	}

	ids := cli.Identifiers
	if ids[0] == "-" {
		if ids, err = readIdentifiers(stdin); err != nil {
			fmt.Fprintf(stderr, "%s: reading standard input: %v\n", progName, err)
			return 1
		}
		if len(ids) == 0 {
			return usageError(stderr, "missing argument")
		}
	}

	resolver := newResolver(cfg.Cache.Size)
	status := 0
	for _, id := range ids {
		res, err := store.Canonicalize(ctx, results, resolver, id)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", progName, err)
			return 1
		}
		if res.Err != nil {
			kind := ""
			var terr *triplet.Error
			if errors.As(res.Err, &terr) {
				kind = terr.KindName()
			}
			logging.Rejected(ctx, id, kind, res.Err, "cached", res.Cached)
			fmt.Fprintf(stderr, "%s: %s\n", progName, capitalize(res.Err.Error()))
			status = 1
			continue
		}
		logging.Canonicalized(ctx, id, res.Canonical, res.Cached)
		fmt.Fprintln(stdout, res.Canonical)
	}

	if c, ok := resolver.(*triplet.Canonicalizer); ok {
		st := c.Stats()
		logging.DebugContext(ctx, "memo stats", "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions)
	}
	return status
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

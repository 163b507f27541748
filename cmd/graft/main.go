// Command graft stages a small example program, prints its canonical
// block text, and runs a speculation demo showing rebuild and deopt
// events from the reference engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cloudcmds/graft/adapt"
	"github.com/cloudcmds/graft/engine"
	"github.com/cloudcmds/graft/frame"
	"github.com/cloudcmds/graft/node"
	"github.com/cloudcmds/graft/stage"
	"github.com/cloudcmds/graft/target"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type config struct {
	CompileThreshold int    `yaml:"compile_threshold"`
	LogLevel         string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		CompileThreshold: engine.DefaultCompileThreshold,
		LogLevel:         "info",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func powerKernel(b *stage.Builder, x node.Expr, watched interface{}) node.Expr {
	n := watched.(int64)
	if n == 0 {
		return b.Lift(1)
	}
	return b.IntTimes(x, powerKernel(b, x, n-1))
}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if *noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	host := engine.New(
		engine.WithCompileThreshold(cfg.CompileThreshold),
		engine.WithLogger(logger),
	)

	heading := color.New(color.FgCyan, color.Bold)
	code := color.New(color.FgGreen)

	// Stage x + 22 as a one-argument call target and show the block that
	// reification produced.
	b := stage.New()
	add22, err := target.NewRoot(b, host, "add22", []frame.Kind{frame.Int},
		func(b *stage.Builder, args []node.Expr) node.Expr {
			return b.IntPlus(args[0], b.Lift(22))
		})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	heading.Println("staged add22(x) = x + 22")
	code.Println(add22.Block().String())
	v, err := add22.Call(int64(20))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Printf("add22(20) = %v\n\n", v)

	// Speculate on the exponent of power(x, y): the kernel unrolls to a
	// flat multiply chain for whichever y is currently hot, rebuilding
	// (and deopting) only when y changes.
	var spec *adapt.Speculate
	power, err := target.NewRoot(b, host, "power", []frame.Kind{frame.Int, frame.Int},
		func(b *stage.Builder, args []node.Expr) node.Expr {
			spec = adapt.NewSpeculate(b, host, frame.Int, args[0], args[1], powerKernel)
			return b.Reflect(spec)
		})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	heading.Println("speculating on the exponent of power(x, y)")
	for _, call := range [][2]int64{{2, 6}, {2, 6}, {2, 4}, {2, 4}, {2, 6}} {
		v, err := power.Call(call[0], call[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Printf("power(%d, %d) = %v   rebuilds=%d\n", call[0], call[1], v, spec.Rebuilds())
	}
	heading.Println("\ncached sub-tree specialized to the last exponent")
	code.Println(spec.Cached().String())
}

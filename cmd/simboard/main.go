// simboard runs the LakeRTOS kernel against a simulated STM32F303 discovery
// board: it boots the configured task set, drives the SysTick timer off the
// host's wall clock, and streams the semihosting console to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lakertos-go/lakertos/examples/blink"
	"github.com/lakertos-go/lakertos/examples/counters"
	"github.com/lakertos-go/lakertos/examples/semihost"
	"github.com/lakertos-go/lakertos/internal/board"
	"github.com/lakertos-go/lakertos/internal/config"
	"github.com/lakertos-go/lakertos/internal/console"
	"github.com/lakertos-go/lakertos/internal/drivers"
	"github.com/lakertos-go/lakertos/internal/kernel"
	"github.com/lakertos-go/lakertos/internal/mem"
	"github.com/lakertos-go/lakertos/internal/runtime"
	"github.com/lakertos-go/lakertos/internal/trace"
)

const tickPeriod = time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to a board.yaml configuration file")
	workload := flag.String("workload", "blink", "workload to run: blink, counters, or semihost")
	logFormat := flag.String("log-format", "text", "log output format: text or json")
	traceFile := flag.String("trace-file", "", "path to write a kernel trace log to (disabled if empty)")
	flag.Parse()

	logger, err := newLogger(*logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simboard: %v\n", err)
		os.Exit(1)
	}

	if err := run(logger, *configPath, *workload, *traceFile); err != nil {
		logger.Error("simboard exited", "err", err)
		os.Exit(1)
	}
}

func newLogger(format string) (*slog.Logger, error) {
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, nil)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(os.Stderr, nil)), nil
	default:
		return nil, fmt.Errorf("unknown --log-format %q: want text or json", format)
	}
}

func run(logger *slog.Logger, configPath, workload, traceFile string) error {
	cfg := config.Default()
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		cfg, err = config.Load(data)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	if traceFile != "" {
		f, err := os.Create(traceFile)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		defer f.Close()
		trace.Open(f)
		defer trace.Close()
	}

	// bootRegion stands in for the target's .bss/.data segment: real silicon
	// clears it before kmain can rely on any global being zeroed. This host
	// simulation keeps its actual state in Go package-level singletons, so
	// the region itself is inert, but Reset still clears it first to mirror
	// the boot contract original_source's Reset() implements.
	bootRegion, err := mem.NewArena(0, 0x100)
	if err != nil {
		return fmt.Errorf("allocate boot region: %w", err)
	}
	defer bootRegion.Free()

	bar := progressbar.Default(int64(4), "booting LakeRTOS")
	defer bar.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var bootErr error
	runtime.RunProtected(ctx, logger, func() {
		runtime.Reset(bootRegion, func() {
			bootErr = kmain(ctx, cfg, workload, bar)
		})
	})
	return bootErr
}

func kmain(ctx context.Context, cfg config.KernelConfig, workload string, bar *progressbar.ProgressBar) error {
	core, ok := board.TakeCorePeripherals()
	if !ok {
		return fmt.Errorf("core peripherals already taken")
	}
	dp, ok := board.TakeDevicePeripherals()
	if !ok {
		return fmt.Errorf("device peripherals already taken")
	}

	leds, err := drivers.NewLeds(dp.GPIOA)
	if err != nil {
		return fmt.Errorf("bring up LEDs: %w", err)
	}
	bar.Add(1)

	usartConsole, err := drivers.NewUSART1Console(dp.RCC, dp.USART1)
	if err != nil {
		return fmt.Errorf("bring up USART1: %w", err)
	}
	bar.Add(1)

	var con kernel.Console
	if cfg.Semihosting {
		con = console.NewStreamConsole(os.Stdout, os.Stdin)
	} else {
		con = usartConsole
	}

	sched, ok := kernel.Init(cfg, core, con, kernel.RoundRobin{ReloadCC: cfg.SwitchRateCC})
	if !ok {
		return fmt.Errorf("kernel already initialized")
	}
	bar.Add(1)

	if err := loadWorkload(sched, leds, workload); err != nil {
		return fmt.Errorf("load workload %q: %w", workload, err)
	}
	bar.Add(1)

	go sched.RunSysTickDriver(ctx, tickPeriod)

	if err := sched.StartScheduling(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("scheduler stopped: %w", err)
	}
	return nil
}

func loadWorkload(sched *kernel.Scheduler, leds *drivers.Leds, name string) error {
	switch name {
	case "blink":
		_, err := sched.CreateProcess(blink.Task(leds, board.Pin(9), 500*time.Millisecond))
		return err
	case "counters":
		c := counters.NewCounters(4)
		for i := 0; i < 4; i++ {
			if _, err := sched.CreateProcess(counters.Task(c, i, 1000)); err != nil {
				return err
			}
		}
		return nil
	case "semihost":
		_, err := sched.CreateProcess(semihost.Task("lakertos> "))
		return err
	default:
		return fmt.Errorf("unknown workload %q", name)
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"fps-pipeline/internal/config"
	"fps-pipeline/internal/logger"
	"fps-pipeline/internal/opencv/capture"
	"fps-pipeline/internal/opencv/conversion"
	"fps-pipeline/internal/opencv/display"
	"fps-pipeline/internal/opencv/safe"
	"fps-pipeline/internal/pipeline"
	"fps-pipeline/internal/report"
	"fps-pipeline/internal/report/render"
	"fps-pipeline/internal/report/viewer"
	"fps-pipeline/internal/shutdown"
)

// HighGUI and fyne both want the process main thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log := logger.NewConsoleLogger(cfg.LogLevel)
	log.Info("Main", "fps-pipeline starting", map[string]interface{}{
		"source":     cfg.Source,
		"mode":       cfg.Mode,
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
	})

	shutdownMgr := shutdown.NewManager(log)
	shutdownMgr.Listen()

	modes, err := cfg.Modes()
	if err != nil {
		log.Error("Main", err, nil)
		return 2
	}

	var series []render.Series
	var summaries []report.Summary
	exit := 0
	for _, mode := range modes {
		if shutdownMgr.QuitRequested() {
			break
		}

		fmt.Printf("Running %s demo...\n", modeTitle(mode))
		res, err := runMode(cfg, mode, shutdownMgr, log)
		if errors.Is(err, pipeline.ErrSourceUnavailable) {
			fmt.Fprintf(os.Stderr, "Error: cannot open video source: %s\n", cfg.Source)
			exit = 1
			continue
		} else if err != nil {
			log.Error("Main", err, map[string]interface{}{"mode": mode.String()})
			exit = 1
		}
		if res == nil {
			continue
		}

		if live := safe.Live(); live != 0 {
			log.Warning("Main", "frames still open after teardown", map[string]interface{}{
				"mode":  mode.String(),
				"count": live,
			})
		}

		label := seriesLabel(mode)
		summary := report.Summarize(label, res.Samples)
		log.Info("Main", "run summary", summary.Fields())
		if res.CaptureErr != nil {
			log.Warning("Main", "capture stopped early", map[string]interface{}{
				"mode":  mode.String(),
				"error": res.CaptureErr.Error(),
			})
		}

		series = append(series, render.Series{Label: label, Samples: res.Samples})
		summaries = append(summaries, summary)
	}

	for _, s := range summaries {
		fmt.Println(s)
	}

	if cfg.ReportPath != "" && len(series) > 0 {
		if err := render.SavePNG(cfg.ReportPath, series, render.DefaultWidth, render.DefaultHeight); err != nil {
			log.Error("Report", err, map[string]interface{}{"path": cfg.ReportPath})
			exit = 1
		} else {
			log.Info("Report", "chart saved", map[string]interface{}{"path": cfg.ReportPath})
		}
	}

	if cfg.ShowReport && len(series) > 0 && !shutdownMgr.QuitRequested() {
		img, err := render.Image(series, render.DefaultWidth, render.DefaultHeight)
		if err != nil {
			log.Error("Report", err, nil)
			exit = 1
		} else {
			viewer.Show(render.Title, img, summaries)
		}
	}

	shutdownMgr.Shutdown()
	return exit
}

func runMode(cfg config.Config, mode pipeline.Mode, shutdownMgr *shutdown.Manager, log logger.Logger) (*pipeline.Result, error) {
	deps := pipeline.Deps{
		Open:      openSource(log),
		Processor: conversion.Grayscale{},
		Quit:      shutdownMgr,
		Logger:    log,
	}
	if !cfg.Headless {
		win := display.NewWindow()
		defer win.Close()
		deps.Sink = win
		deps.Quit = pipeline.AnyQuit(win, shutdownMgr)
	}

	ctrl, err := pipeline.NewController(cfg.Pipeline(mode), deps)
	if err != nil {
		return nil, err
	}
	shutdownMgr.Register(shutdown.StopFunc(func() { ctrl.Stop() }))

	return ctrl.Run(shutdownMgr.Context())
}

func openSource(log logger.Logger) pipeline.Opener {
	return func(id string) (pipeline.Source, error) {
		src, err := capture.Open(id)
		if err != nil {
			return nil, err
		}
		p := src.Params()
		log.Info("Capture", "source opened", map[string]interface{}{
			"source": src.ID(),
			"width":  p.Width,
			"height": p.Height,
			"fps":    p.FPS,
		})
		return src, nil
	}
}

func modeTitle(mode pipeline.Mode) string {
	if mode == pipeline.ModeConcurrent {
		return "multi-thread"
	}
	return "single-thread"
}

func seriesLabel(mode pipeline.Mode) string {
	if mode == pipeline.ModeConcurrent {
		return "Multi Thread FPS"
	}
	return "Single Thread FPS"
}

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// diffdrive drives a two motor platform from a PlayStation style pad.
//
// Usage:
//
//	diffdrive [-config diffdrive.yaml] [-logtostderr] [-v=2]
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/GermanBionicSystems/diffdrive/internal/config"
	"github.com/GermanBionicSystems/diffdrive/internal/hw"
	"github.com/golang/glog"
)

func mainImpl() error {
	cfgPath := flag.String("config", "", "YAML configuration file; defaults are used when empty")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	p, err := hw.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Close(); err != nil {
			glog.Errorf("close: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	glog.Infof("driving %s and %s from %s every %s", p.Left, p.Right, p.Pad, cfg.Loop.Interval())
	err = p.Loop(cfg).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	err := mainImpl()
	if err != nil {
		glog.Errorf("diffdrive: %v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

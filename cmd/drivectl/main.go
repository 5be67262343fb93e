// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// drivectl is an interactive shell to exercise the motors, lights and pad
// of a platform one command at a time, without the control loop.
//
// Usage:
//
//	drivectl [-config diffdrive.yaml]
package main

import (
	"flag"
	"os"

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
	defer p.Close()

	sh := newShell(p)
	if args := flag.Args(); len(args) > 0 {
		return sh.Process(args...)
	}
	sh.Run()
	return nil
}

func main() {
	err := mainImpl()
	if err != nil {
		glog.Errorf("drivectl: %v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

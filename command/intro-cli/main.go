// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/introd/command/intro-cli/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	save    bool
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "intro-cli"
	app.Usage = "create and read introduction records on an introd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: "testing",
			Usage: " connect to introd `NETWORK` [live|testing|local]",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: " configuration `FILE` [default: $XDG_CONFIG_HOME/intro-cli/NETWORK-intro-cli.json]",
		},
		cli.StringFlag{
			Name:  "identity, i",
			Value: "",
			Usage: " identity `NAME` [default identity]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " identity `PASSWORD`",
		},
		cli.StringFlag{
			Name:  "use-agent, u",
			Value: "",
			Usage: " executable program that returns the password `EXE`",
		},
		cli.BoolFlag{
			Name:  "zero-agent-cache, z",
			Usage: " force re-entry of agent password",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "setup",
			Usage:     "initialise intro-cli configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "connect, C",
					Value: "",
					Usage: "*introd host/IP and port, `HOST:PORT`",
				},
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "fingerprint, f",
					Value: "",
					Usage: " expected server certificate `HEX` fingerprint",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing `SEED` instead of a new one",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "add",
			Usage:     "add a new identity to the configuration",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "description, d",
					Value: "",
					Usage: "*identity description `STRING`",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: " use existing `SEED` instead of a new one",
				},
			},
			Action: runAdd,
		},
		{
			Name:      "address",
			Usage:     "derive the storage address of a record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*record `NAME`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or base58 `ACCOUNT` [default identity]",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "create",
			Usage:     "create the introduction record for a name",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*record `NAME`",
				},
				cli.StringFlag{
					Name:  "message, m",
					Value: "",
					Usage: " introduction `MESSAGE`",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "update",
			Usage:     "replace the message of an existing record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "*record `NAME` (must match the stored name)",
				},
				cli.StringFlag{
					Name:  "message, m",
					Value: "",
					Usage: " new introduction `MESSAGE`",
				},
			},
			Action: runUpdate,
		},
		{
			Name:      "get",
			Usage:     "display a committed record",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "storage, s",
					Value: "",
					Usage: "+base58 storage `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "name, N",
					Value: "",
					Usage: "+record `NAME` of the owner",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: " identity name or base58 `ACCOUNT` [default identity]",
				},
			},
			Action: runGet,
		},
		{
			Name:      "list",
			Usage:     "list committed records in address order",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "start, s",
					Value: "",
					Usage: " start from storage `ADDRESS`",
				},
				cli.IntFlag{
					Name:  "count, C",
					Value: 20,
					Usage: " maximum records to output `COUNT`",
				},
			},
			Action: runList,
		},
		{
			Name:   "info",
			Usage:  "display intro-cli identities",
			Action: runInfo,
		},
		{
			Name:   "introd-info",
			Usage:  "display introd status",
			Action: runIntrodInfo,
		},
		{
			Name:   "password",
			Usage:  "change an identity's password",
			Action: runChangePassword,
		},
		{
			Name:  "version",
			Usage: "display intro-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file for certain commands
		command := c.Args().Get(0)
		switch command {
		case "", "help", "h", "version":
			return nil
		}

		network := c.GlobalString("network")
		switch network {
		case "live", "bitmark":
			network = "live"
		case "testing", "test":
			network = "testing"
		case "local", "regression":
			network = "local"
		default:
			return fmt.Errorf("network: %q can only be live/testing/local", network)
		}

		file := c.GlobalString("config-file")
		if "" == file {
			var err error
			file, err = defaultConfigFile(app.Name, network)
			if nil != err {
				return err
			}
		}

		if verbose {
			fmt.Fprintf(e, "file: %q\n", file)
		}

		m := &metadata{
			file:    file,
			testnet: "live" != network,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		if "setup" == command {
			// do not run setup if there is an existing configuration
			if _, err := checkFileExists(file); nil == err {
				return fmt.Errorf("not overwriting existing configuration: %q", file)
			}
		} else {
			config, err := configuration.Load(file)
			if nil != err {
				return err
			}
			m.config = config
			m.testnet = config.TestNet
		}

		c.App.Metadata["config"] = m
		return nil
	}

	// update the configuration if required
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || !m.save {
			return nil
		}
		if m.verbose {
			fmt.Fprintf(m.e, "updating config file: %s\n", m.file)
		}
		return configuration.Save(m.file, m.config)
	}

	return app
}

// $XDG_CONFIG_HOME/intro-cli/NETWORK-intro-cli.json
func defaultConfigFile(name string, network string) (string, error) {
	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		home, err := os.UserHomeDir()
		if nil != err {
			return "", fmt.Errorf("XDG_CONFIG_HOME environment is not set")
		}
		p = filepath.Join(home, ".config")
	}
	return filepath.Join(p, name, network+"-"+name+".json"), nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/urfave/cli"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/bitmark-inc/introd/command/intro-cli/configuration"
	"github.com/bitmark-inc/introd/fault"
)

const (
	minimumPasswordLength = 8
	passwordTag           = "intro-cli:password:"
)

// prompt on the controlling terminal with echo disabled
func readPassword(prompt string) (string, error) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if nil != err {
		return "", err
	}
	defer tty.Close()

	fmt.Fprint(tty, prompt)
	password, err := terminal.ReadPassword(int(tty.Fd()))
	fmt.Fprintln(tty)
	if nil != err {
		return "", err
	}
	return string(password), nil
}

func promptNewPassword() (string, error) {
	password, err := readPassword("Set identity password (length >= 8): ")
	if nil != err {
		return "", err
	}
	if len(password) < minimumPasswordLength {
		return "", fault.InvalidPasswordLength
	}

	verify, err := readPassword("Verify password: ")
	if nil != err {
		return "", err
	}
	if password != verify {
		return "", fault.PasswordMismatch
	}
	return password, nil
}

func promptPassword(name string) (string, error) {
	return readPassword("Password for " + name + ": ")
}

// expect to execute agent with parameters
//   --clear             - if the cache is to be dropped
//   --confirm=1         - for additional confirm
//   cache-id            - allows password to be cached for a time
//   error-message       - blank
//   prompt              - names the identity
//   description         - shows the operation
func passwordFromAgent(name string, title string, agent string, clear bool) (string, error) {

	arguments := []string{}
	if clear {
		arguments = append(arguments, "--clear")
	}
	arguments = append(arguments,
		"--confirm=1",
		passwordTag+name,
		"",
		"Password for: "+name,
		"Enter password to: "+title,
	)

	out, err := exec.Command(agent, arguments...).Output()
	if nil != err {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// decrypt the selected identity using the password from the flag,
// the agent or the terminal in that order
func getCredentials(c *cli.Context, config *configuration.Configuration, title string) (string, *configuration.Private, error) {
	name, err := checkName(c.GlobalString("identity"), config)
	if nil != err {
		return "", nil, err
	}

	password := c.GlobalString("password")
	if "" == password {
		if agent := c.GlobalString("use-agent"); "" != agent {
			password, err = passwordFromAgent(name, title, agent, c.GlobalBool("zero-agent-cache"))
		} else {
			password, err = promptPassword(name)
		}
		if nil != err {
			return "", nil, err
		}
	}

	private, err := config.Private(password, name)
	if nil != err {
		return "", nil, err
	}
	return name, private, nil
}

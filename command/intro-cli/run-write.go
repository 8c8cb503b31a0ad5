// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/introd/command/intro-cli/rpccalls"
)

func runCreate(c *cli.Context) error {
	return runWrite(c, "create")
}

func runUpdate(c *cli.Context) error {
	return runWrite(c, "update")
}

func runWrite(c *cli.Context, operation string) error {

	m := c.App.Metadata["config"].(*metadata)

	name, message, err := checkRecord(c.String("name"), c.String("message"))
	if nil != err {
		return err
	}

	identity, private, err := getCredentials(c, m.config, operation+" record: "+name)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "identity: %s\n", identity)
		fmt.Fprintf(m.e, "name: %q\n", name)
		fmt.Fprintf(m.e, "message: %q\n", message)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	data := &rpccalls.WriteData{
		Owner:   private.PrivateKey,
		Name:    name,
		Message: message,
	}

	var response *rpccalls.WriteReply
	if "create" == operation {
		response, err = client.Create(data)
	} else {
		response, err = client.Update(data)
	}
	if nil != err {
		return err
	}

	printJson(m.w, response)

	if 0 != response.Code {
		return fmt.Errorf("%s failed: code: %d  %s", operation, response.Code, response.Error)
	}
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name, _, err := checkRecord(c.String("name"), "")
	if nil != err {
		return err
	}

	owner, err := checkOwner(c.String("owner"), m.config)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "name: %q\n", name)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Address(owner, name)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runGet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	storage, err := checkAddress(c.String("storage"))
	if nil != err {
		return err
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	// derive the address from owner and name when not given directly
	if nil == storage {
		name, _, err := checkRecord(c.String("name"), "")
		if nil != err {
			return err
		}
		owner, err := checkOwner(c.String("owner"), m.config)
		if nil != err {
			return err
		}
		derived, err := client.Address(owner, name)
		if nil != err {
			return err
		}
		storage = &derived.Storage
	}

	if m.verbose {
		fmt.Fprintf(m.e, "storage: %s\n", storage)
	}

	response, err := client.Get(*storage)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	start, err := checkAddress(c.String("start"))
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.List(start, count)
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

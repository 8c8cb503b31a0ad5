// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sort"

	"github.com/urfave/cli"
)

type identityInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Account     string `json:"account"`
}

type configInfo struct {
	DefaultIdentity string         `json:"default_identity"`
	TestNet         bool           `json:"testnet"`
	Connect         string         `json:"connect"`
	Fingerprint     string         `json:"fingerprint,omitempty"`
	Identities      []identityInfo `json:"identities"`
}

// display the configuration without any private data
func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	info := configInfo{
		DefaultIdentity: m.config.DefaultIdentity,
		TestNet:         m.config.TestNet,
		Connect:         m.config.Connect,
		Fingerprint:     m.config.Fingerprint,
		Identities:      make([]identityInfo, 0, len(m.config.Identities)),
	}
	for name, id := range m.config.Identities {
		info.Identities = append(info.Identities, identityInfo{
			Name:        name,
			Description: id.Description,
			Account:     id.Account,
		})
	}
	sort.Slice(info.Identities, func(i, j int) bool {
		return info.Identities[i].Name < info.Identities[j].Name
	})

	printJson(m.w, info)
	return nil
}

func runIntrodInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := connect(m)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetInfo()
	if nil != err {
		return err
	}

	printJson(m.w, response)
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/introd/fault"
)

// CanonicalListen - make a listen IP:Port canonical and select the
// network type to pass to net.Listen
//
// examples:
//   IPv4:  127.0.0.1:1234  →  tcp4  127.0.0.1:1234
//   IPv6:  [::1]:1234      →  tcp6  [::1]:1234
//   any:   *:1234          →  tcp   [::]:1234
func CanonicalListen(hostPort string) (string, string, error) {

	host, port, err := net.SplitHostPort(strings.TrimSpace(hostPort))
	if nil != err {
		return "", "", fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(strings.TrimSpace(port))
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return "", "", fault.InvalidPortNumber
	}
	p := strconv.Itoa(numericPort)

	host = strings.TrimSpace(host)
	if "*" == host {
		return "tcp", "[::]:" + p, nil
	}

	IP := net.ParseIP(host)
	if nil == IP {
		return "", "", fault.InvalidIpAddress
	}

	if nil != IP.To4() {
		return "tcp4", IP.String() + ":" + p, nil
	}
	return "tcp6", "[" + IP.String() + "]:" + p, nil
}

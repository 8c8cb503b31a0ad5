// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate_test

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/introd/fault"
	"github.com/bitmark-inc/introd/fixtures"
	"github.com/bitmark-inc/introd/rpc/certificate"
)

func setup(t *testing.T) (string, string, func()) {
	dir, err := ioutil.TempDir("", "introd-certificate")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	cer := filepath.Join(dir, "rpc.crt")
	key := filepath.Join(dir, "rpc.key")
	return cer, key, func() { _ = os.RemoveAll(dir) }
}

func TestGenerateAndLoad(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key, cleanup := setup(t)
	defer cleanup()

	err := certificate.Generate("test", cer, key, []string{"127.0.0.1"})
	assert.Nil(t, err, "generate")

	tlsConfig, fingerprint, err := certificate.Load(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.Nil(t, err, "load")

	pair, err := tls.LoadX509KeyPair(cer, key)
	assert.Nil(t, err, "key pair")
	assert.Equal(t, sha3.Sum256(pair.Certificate[0]), fingerprint, "wrong fingerprint")
	assert.Equal(t, pair.Certificate, tlsConfig.Certificates[0].Certificate, "wrong config")
}

func TestGenerateWillNotOverwrite(t *testing.T) {
	cer, key, cleanup := setup(t)
	defer cleanup()

	err := certificate.Generate("test", cer, key, nil)
	assert.Nil(t, err, "generate")

	err = certificate.Generate("test", cer, key, nil)
	assert.Equal(t, fault.CertificateFileExists, err, "certificate exists")

	_ = os.Remove(cer)
	err = certificate.Generate("test", cer, key, nil)
	assert.Equal(t, fault.KeyFileExists, err, "key exists")
}

func TestGetInvalid(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", "not a certificate", "not a key")
	assert.NotNil(t, err, "invalid pem")
}

func TestLoadMissing(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cer, key, cleanup := setup(t)
	defer cleanup()

	_, _, err := certificate.Load(logger.New(fixtures.LogCategory), "test", cer, key)
	assert.NotNil(t, err, "missing files")
}

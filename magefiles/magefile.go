// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the entityschema project using Mage.
//
// Usage:
//
//	mage build             Compile the entityschema binary to bin/
//	mage install           Install entityschema to GOPATH/bin
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests
//	mage test:integration  Build, then run the tests under tests/
//	mage test:cover        Run unit tests with a coverage profile
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
package main

/*
DESCRIPTION
  dash7 is a command-line front-end for the dash7 codec: it decodes a
  caller-supplied hex string as a foreground frame, background frame, ALP
  command, serial frame, or filesystem file, and prints the decoded value.

LICENSE
  This tool performs no radio or modem I/O; it only decodes hex the caller
  already has in hand.
*/

// Package main implements the dash7 CLI: a thin wrapper around the dash7
// façade package's decode operations.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vhdirk/dash7-go"
	"github.com/vhdirk/dash7-go/fileid"
)

// Logging configuration. cmd/dash7 is the only part of this module that
// logs; the core codec packages return errors instead.
const (
	logPath      = "/var/log/dash7/dash7.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	typePtr := flag.String("type", "", "frame type to decode: fg, bg, alp, serial, or systemfile (omit to probe)")
	fileIDPtr := flag.String("f", "", "file id (decimal or 0x-prefixed hex), required with -type systemfile")
	verbosePtr := flag.Bool("v", false, "log decode attempts to "+logPath)
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "parse" {
		args = args[1:]
	}
	flag.CommandLine.Parse(args)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dash7 parse --type {fg|bg|alp|serial|systemfile} [-f fileid] HEX")
		os.Exit(2)
	}

	var logger *lumberjack.Logger
	if *verbosePtr {
		logger = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		}
		defer logger.Close()
	}
	logf := func(format string, args ...any) {
		if logger != nil {
			fmt.Fprintf(logger, format+"\n", args...)
		}
	}

	b, err := decodeHex(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "dash7: %v\n", err)
		os.Exit(1)
	}

	var fileID fileid.ID
	if *fileIDPtr != "" {
		n, err := strconv.ParseUint(*fileIDPtr, 0, 8)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dash7: invalid -f fileid %q: %v\n", *fileIDPtr, err)
			os.Exit(2)
		}
		fileID = fileid.FromByte(uint8(n))
	}

	value, kind, err := decode(b, *typePtr, fileID, logf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dash7: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %+v\n", kind, value)
}

// decodeHex strips whitespace from s and decodes it as hex.
func decodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return b, nil
}

// decode dispatches to the façade operation named by typ. With typ == "" it
// probes foreground, then background, then ALP, then serial, then every
// file id from 0x00 to 0x2E in turn (fileID is not consulted), returning
// the first successful decode.
func decode(b []byte, typ string, fileID fileid.ID, logf func(string, ...any)) (any, string, error) {
	switch typ {
	case "fg":
		return tryForeground(b)
	case "bg":
		return tryBackground(b)
	case "alp":
		return tryCommand(b)
	case "serial":
		return trySerial(b)
	case "systemfile":
		return tryFile(b, fileID)
	case "":
		if v, k, err := tryForeground(b); err == nil {
			return v, k, nil
		}
		logf("probe: not a foreground frame")
		if v, k, err := tryBackground(b); err == nil {
			return v, k, nil
		}
		logf("probe: not a background frame")
		if v, k, err := tryCommand(b); err == nil {
			return v, k, nil
		}
		logf("probe: not an ALP command")
		if v, k, err := trySerial(b); err == nil {
			return v, k, nil
		}
		logf("probe: not a serial frame")
		for n := 0; n < 0x2f; n++ {
			if v, k, err := tryFile(b, fileid.FromByte(uint8(n))); err == nil {
				return v, k, nil
			}
		}
		return nil, "", fmt.Errorf("could not decode input as any known frame type")
	default:
		return nil, "", fmt.Errorf("unknown -type %q", typ)
	}
}

func tryForeground(b []byte) (any, string, error) {
	v, err := dash7.DecodeForegroundFrame(b)
	if err != nil {
		return nil, "", err
	}
	return v, "ForegroundFrame", nil
}

func tryBackground(b []byte) (any, string, error) {
	v, err := dash7.DecodeBackgroundFrame(b)
	if err != nil {
		return nil, "", err
	}
	return v, "BackgroundFrame", nil
}

func tryCommand(b []byte) (any, string, error) {
	v, err := dash7.DecodeCommand(b)
	if err != nil {
		return nil, "", err
	}
	return v, "Command", nil
}

func trySerial(b []byte) (any, string, error) {
	v, err := dash7.DecodeSerialFrame(b)
	if err != nil {
		return nil, "", err
	}
	return v, "SerialFrame", nil
}

func tryFile(b []byte, id fileid.ID) (any, string, error) {
	v, err := dash7.DecodeFile(b, id)
	if err != nil {
		return nil, "", err
	}
	return v, fmt.Sprintf("File(%s)", id), nil
}

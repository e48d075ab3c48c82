// bencode - bencode codec CLI tool
//
// Usage:
//
//	bencode decode [file]        Pretty-print bencode values
//	bencode canon [file]         Rewrite bencode in canonical form
//	bencode to-json [file]       Convert bencode values to JSON, one per line
//	bencode from-json [file]     Convert a JSON document to bencode
//	bencode to-cbor [file]       Transcode bencode values to CBOR
//	bencode from-cbor [file]     Transcode a CBOR document to bencode
//	bencode to-msgpack [file]    Transcode bencode values to MessagePack
//	bencode from-msgpack [file]  Transcode a MessagePack document to bencode
//	bencode version              Print version info
//
// Gzip-compressed input (for example a .torrent.gz) is detected and
// unpacked transparently. If no file is given, reads from stdin.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/torquata/bencode/bencode"
)

const version = "0.1.0"

type options struct {
	out       string
	canonical bool
	maxDepth  int
	verbose   bool
}

// flagSet records which options were given on the command line, so a
// config file never overrides an explicit flag.
type flagSet struct {
	out       bool
	canonical bool
	maxDepth  bool
	verbose   bool
}

func defaultOptions() options {
	return options{maxDepth: bencode.DefaultMaxDepth}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	cmd := os.Args[1]

	opts := defaultOptions()
	var set flagSet
	configPath := ""
	fileArg := ""
	for _, arg := range os.Args[2:] {
		switch {
		case arg == "--canonical":
			opts.canonical = true
			set.canonical = true
		case arg == "-v" || arg == "--verbose":
			opts.verbose = true
			set.verbose = true
		case strings.HasPrefix(arg, "--out="):
			opts.out = strings.TrimPrefix(arg, "--out=")
			set.out = true
		case strings.HasPrefix(arg, "--max-depth="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--max-depth="))
			if err != nil || n < 1 {
				fmt.Fprintf(os.Stderr, "bencode: invalid --max-depth value %q\n", arg)
				os.Exit(2)
			}
			opts.maxDepth = n
			set.maxDepth = true
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			if !strings.HasPrefix(arg, "-") || arg == "-" {
				fileArg = arg
				continue
			}
			fmt.Fprintf(os.Stderr, "bencode: unknown flag: %s\n", arg)
			printUsage()
			os.Exit(2)
		}
	}

	if configPath != "" {
		if err := loadToolConfig(configPath, &opts, set); err != nil {
			fatal("%v", err)
		}
	}
	initLogger(opts.verbose)
	if configPath != "" {
		log.Debug().Str("path", configPath).Msg("loaded config")
	}

	switch cmd {
	case "decode":
		cmdDecode(readInput(fileArg), opts)
	case "canon":
		cmdCanon(readInput(fileArg), opts)
	case "to-json":
		cmdToJSON(readInput(fileArg), opts)
	case "from-json":
		cmdFromJSON(readInput(fileArg), opts)
	case "to-cbor":
		cmdTranscodeOut(readInput(fileArg), opts, "CBOR", bencode.ToCBOR)
	case "from-cbor":
		cmdTranscodeIn(readInput(fileArg), opts, "CBOR", bencode.FromCBOR)
	case "to-msgpack":
		cmdTranscodeOut(readInput(fileArg), opts, "MessagePack", bencode.ToMsgpack)
	case "from-msgpack":
		cmdTranscodeIn(readInput(fileArg), opts, "MessagePack", bencode.FromMsgpack)
	case "version", "-v", "--version":
		fmt.Printf("bencode %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `bencode - bencode codec CLI tool

Usage:
  bencode decode [options] [file]        Pretty-print bencode values
  bencode canon [options] [file]         Rewrite bencode in canonical form
  bencode to-json [options] [file]       Convert bencode values to JSON, one per line
  bencode from-json [options] [file]     Convert a JSON document to bencode
  bencode to-cbor [options] [file]       Transcode bencode values to CBOR
  bencode from-cbor [options] [file]     Transcode a CBOR document to bencode
  bencode to-msgpack [options] [file]    Transcode bencode values to MessagePack
  bencode from-msgpack [options] [file]  Transcode a MessagePack document to bencode
  bencode version                        Print version info

Options:
  --out=FILE          Write output to FILE instead of stdout
  --canonical         Sort dictionary keys in bencode output
  --max-depth=N       Maximum container nesting accepted by the decoder
  --config=FILE       Load defaults from a TOML config file
  -v, --verbose       Log processing details to stderr

Gzip-compressed input is detected and unpacked transparently.
If no file is given, reads from stdin.

Examples:
  bencode decode ubuntu.torrent
  bencode to-json ubuntu.torrent | jq .info.name
  echo '{"name":"a","length":1}' | bencode from-json --canonical
  bencode canon --out=fixed.torrent sloppy.torrent
`)
}

// readInput slurps the whole input, unpacking gzip when the stream
// starts with its magic bytes.
func readInput(path string) []byte {
	var r io.Reader = os.Stdin
	name := "stdin"
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fatal("open input: %v", err)
		}
		defer f.Close()
		r = f
		name = path
	}

	br := bufio.NewReader(r)
	packed := false
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(br)
		if err != nil {
			fatal("gzip input: %v", err)
		}
		defer zr.Close()
		r = zr
		packed = true
	} else {
		r = br
	}

	data, err := io.ReadAll(r)
	if err != nil {
		fatal("read input: %v", err)
	}
	log.Debug().Str("input", name).Int("bytes", len(data)).Bool("gzip", packed).Msg("read input")
	return data
}

func writeOutput(path string, data []byte) {
	if path == "" || path == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			fatal("write output: %v", err)
		}
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fatal("write output: %v", err)
	}
	log.Debug().Str("output", path).Int("bytes", len(data)).Msg("wrote output")
}

// cmdDecode: bencode -> readable rendering, one value per line.
func cmdDecode(data []byte, opts options) {
	start := time.Now()
	vals, err := bencode.ParseWithOptions(data, bencode.ParseOptions{MaxDepth: opts.maxDepth})
	if err != nil {
		fatal("decode: %v", err)
	}
	log.Debug().Int("values", len(vals)).Dur("elapsed", time.Since(start)).Msg("decoded")

	var sb strings.Builder
	for _, v := range vals {
		sb.WriteString(v.String())
		sb.WriteByte('\n')
	}
	writeOutput(opts.out, []byte(sb.String()))
}

// cmdCanon: bencode -> canonical bencode. Key order is normalized and
// the rest of the encoding is already unique, so equal documents come
// out byte-identical.
func cmdCanon(data []byte, opts options) {
	vals, err := bencode.ParseWithOptions(data, bencode.ParseOptions{MaxDepth: opts.maxDepth})
	if err != nil {
		fatal("decode: %v", err)
	}
	out := bencode.EncodeAllWithOptions(vals, bencode.EncodeOptions{SortKeys: true})
	log.Debug().Int("values", len(vals)).Int("bytes", len(out)).Msg("canonicalized")
	writeOutput(opts.out, out)
}

// cmdToJSON: bencode -> JSON, one document per line.
func cmdToJSON(data []byte, opts options) {
	s := bencode.NewScannerWithOptions(data, bencode.ParseOptions{MaxDepth: opts.maxDepth})
	var buf bytes.Buffer
	n := 0
	for {
		v, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fatal("decode: %v", err)
		}
		doc, err := bencode.ToJSON(v)
		if err != nil {
			fatal("convert to JSON: %v", err)
		}
		buf.Write(doc)
		buf.WriteByte('\n')
		n++
	}
	log.Debug().Int("values", n).Msg("converted to JSON")
	writeOutput(opts.out, buf.Bytes())
}

// cmdFromJSON: JSON -> bencode.
func cmdFromJSON(data []byte, opts options) {
	v, err := bencode.FromJSON(data)
	if err != nil {
		fatal("parse JSON: %v", err)
	}
	writeOutput(opts.out, bencode.EncodeWithOptions(v, bencode.EncodeOptions{SortKeys: opts.canonical}))
}

// cmdTranscodeOut: bencode -> another binary format, values concatenated.
func cmdTranscodeOut(data []byte, opts options, format string, conv func(bencode.Value) ([]byte, error)) {
	s := bencode.NewScannerWithOptions(data, bencode.ParseOptions{MaxDepth: opts.maxDepth})
	var buf bytes.Buffer
	n := 0
	for {
		v, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fatal("decode: %v", err)
		}
		doc, err := conv(v)
		if err != nil {
			fatal("convert to %s: %v", format, err)
		}
		buf.Write(doc)
		n++
	}
	log.Debug().Int("values", n).Str("format", format).Msg("transcoded")
	writeOutput(opts.out, buf.Bytes())
}

// cmdTranscodeIn: another binary format -> bencode.
func cmdTranscodeIn(data []byte, opts options, format string, conv func([]byte) (bencode.Value, error)) {
	v, err := conv(data)
	if err != nil {
		fatal("parse %s: %v", format, err)
	}
	writeOutput(opts.out, bencode.EncodeWithOptions(v, bencode.EncodeOptions{SortKeys: opts.canonical}))
}

func initLogger(verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Str("app", "bencode").Logger().Level(level)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "bencode: "+format+"\n", args...)
	os.Exit(1)
}

package codec

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/cachekit/treekey/cmd/fqnctl/commons"
	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var EncodeCmd = &cobra.Command{
	Use:   "encode PATH",
	Short: "print the binary encoding of PATH as hex",
	Run: func(cmd *cobra.Command, args []string) {
		out, err := EncodeHex(args[0])
		if err != nil {
			commons.ErrFatalf("%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	},
	Args: cobra.ExactArgs(1),
}

var DecodeCmd = &cobra.Command{
	Use:   "decode HEX",
	Short: "decode a hex encoded path and print it",
	Run: func(cmd *cobra.Command, args []string) {
		out, err := DecodeHex(args[0])
		if err != nil {
			commons.ErrFatalf("%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	},
	Args: cobra.ExactArgs(1),
}

// EncodeHex parses path and returns its encoding in hex.
func EncodeHex(path string) (string, error) {
	var buf bytes.Buffer
	if err := fqn.FromString(path).Encode(&buf); err != nil {
		return "", errors.Wrapf(err, "encoding %q", path)
	}
	return hex.EncodeToString(buf.Bytes()), nil
}

// DecodeHex decodes a path of string elements from its hex encoding.
func DecodeHex(s string) (string, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", errors.Wrap(err, "decoding hex")
	}
	f, err := fqn.Decode[string](bytes.NewReader(b))
	if err != nil {
		return "", errors.Wrap(err, "decoding path")
	}
	return f.String(), nil
}

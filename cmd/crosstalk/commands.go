package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/crosstalk"
	"github.com/unkn0wn-root/crosstalk/codec"
)

var errNotEncoded = errors.New("input is not an encoded frame")

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [message...]",
		Short: "Encode a message (arguments or stdin) into a frame",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.translator()
			if err != nil {
				return err
			}
			msg, err := a.input(args)
			if err != nil {
				return err
			}
			w, err := t.Encode(msg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, w)
			return err
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [frame...]",
		Short: "Decode a frame in any language (arguments or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.translator()
			if err != nil {
				return err
			}
			w, err := a.input(args)
			if err != nil {
				return err
			}
			msg, err := t.Decode(w)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, msg)
			return err
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "check [frame...]",
		Short: "Report whether input looks like an encoded frame",
		Long:  "check runs the cheap shape test only. It exits non-zero when the input is not a frame.",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.translator()
			if err != nil {
				return err
			}
			w, err := a.input(args)
			if err != nil {
				return err
			}
			ok := t.IsEncoded(w)
			if !quiet {
				fmt.Fprintln(a.stdout, ok)
			}
			if !ok {
				return errNotEncoded
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing, only set the exit status")
	return cmd
}

func newCodebookCmd(a *app) *cobra.Command {
	var (
		format, out string
		digest      bool
	)
	cmd := &cobra.Command{
		Use:   "codebook",
		Short: "Export the codeword table for the selected language",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.translator()
			if err != nil {
				return err
			}
			if digest {
				d, err := codec.CodebookDigest(t.Codebook())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.stdout, d)
				return err
			}
			c, err := codebookCodec(format)
			if err != nil {
				return err
			}
			b, err := c.Encode(t.Codebook())
			if err != nil {
				return err
			}
			if out != "" {
				return os.WriteFile(out, b, 0o644)
			}
			_, err = a.stdout.Write(b)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json, cbor, msgpack or proto")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&digest, "digest", false, "print only the table digest")
	return cmd
}

func codebookCodec(format string) (codec.Codec[crosstalk.Codebook], error) {
	switch format {
	case "json":
		return codec.JSON[crosstalk.Codebook]{Indent: "  "}, nil
	case "cbor":
		return codec.NewCBOR[crosstalk.Codebook](true)
	case "msgpack":
		return codec.Msgpack[crosstalk.Codebook]{}, nil
	case "proto":
		return codec.NewCodebookProto(), nil
	}
	return nil, fmt.Errorf("unknown codebook format %q", format)
}

func newLanguagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List known languages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range a.cfg.Names() {
				l, err := a.cfg.ResolveLanguage(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%-10s %s  %s\n", name, l, l.Fingerprint())
			}
			return nil
		},
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/versepace/versepace/internal/service"
)

// resetProgress asks for confirmation on in and then erases the saved
// reading state. Anything other than "y" or "yes" leaves it untouched.
func resetProgress(ctx context.Context, svc *service.ReadingService, sess *service.Session, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Erase all saved reading progress? [y/N] ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		fmt.Fprintln(out, "Nothing changed.")
		return nil
	}

	if err := svc.Reset(ctx, sess); err != nil {
		return err
	}
	fmt.Fprintln(out, "Reading progress erased.")
	return nil
}

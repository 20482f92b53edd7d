package quanta_test

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/quanta"
)

// Example stores a line of text through a write-only session and reads
// it back through a second session.
func Example() {
	ctx := context.Background()
	store := quanta.New(quanta.Config{})
	defer store.Close()

	w, _ := store.Open(ctx, true)
	if _, err := w.ReadFrom(ctx, strings.NewReader("hello world\n")); err != nil {
		fmt.Println(err)
		return
	}

	r, _ := store.Open(ctx, false)
	var out strings.Builder
	if _, err := r.WriteTo(ctx, &out); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(out.String())
	// Output: hello world
}

// ExampleSession_Seek repositions a session and reads the tail of the
// stored content.
func ExampleSession_Seek() {
	ctx := context.Background()
	store := quanta.New(quanta.Config{})
	defer store.Close()

	w, _ := store.Open(ctx, true)
	w.ReadFrom(ctx, strings.NewReader("hello world"))

	r, _ := store.Open(ctx, false)
	r.Seek(ctx, -5, io.SeekEnd)
	buf := make([]byte, 5)
	n, _ := r.Read(ctx, buf)
	fmt.Println(string(buf[:n]))
	// Output: world
}

package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/papercomputeco/unibot/pkg/cliui"
)

type readResult struct {
	line string
	err  error
}

// Console reads typed lines and prints replies.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Listen prompts and reads one line. The timeout is ignored: typed input
// waits for the user. Cancelling ctx abandons the read.
func (c *Console) Listen(ctx context.Context, _ time.Duration) (string, error) {
	fmt.Fprint(c.out, "\n"+cliui.UserStyle.Render("👤 You:")+" ")

	ch := make(chan readResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil {
			if res.err == io.EOF && line != "" {
				return line, nil
			}
			return "", res.err
		}
		return line, nil
	}
}

func (c *Console) Speak(_ context.Context, text string) {
	fmt.Fprintln(c.out, cliui.BotLine(text))
}

func (c *Console) Mode() Mode {
	return ModeText
}

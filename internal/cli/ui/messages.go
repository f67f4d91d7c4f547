package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// 状态信息写 stderr，stdout 只留给历史数据，方便 -o json 接管道
var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
)

// Fail prints an error line.
func Fail(format string, args ...any) {
	failColor.Fprintf(os.Stderr, "✗ %s\n", fmt.Sprintf(format, args...))
}

// Warn prints a warning line.
func Warn(format string, args ...any) {
	warnColor.Fprintf(os.Stderr, "⚠ %s\n", fmt.Sprintf(format, args...))
}

// Info prints a progress line.
func Info(format string, args ...any) {
	infoColor.Fprintf(os.Stderr, "ℹ %s\n", fmt.Sprintf(format, args...))
}

// Hint prints a bold line to stdout, used for follow-up commands.
func Hint(format string, args ...any) {
	fmt.Println(Styles.Bold.Render(fmt.Sprintf(format, args...)))
}

// Panel prints title and body in a bordered box, green when ok, red otherwise.
func Panel(title, body string, ok bool) {
	style, titleColor := Styles.OKPanel, okColor
	if !ok {
		style, titleColor = Styles.ErrPanel, failColor
	}
	fmt.Println(style.Render(titleColor.Sprint(title) + "\n\n" + body))
}

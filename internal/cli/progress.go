package cli

import (
	"io"
	"path/filepath"

	"github.com/nerdneilsfield/go-report-formatter/internal/batch"
	"github.com/pterm/pterm"
)

// progressObserver 用 pterm 进度条显示批处理进度
type progressObserver struct {
	bar *pterm.ProgressbarPrinter
}

func newProgressObserver(total int, w io.Writer) *progressObserver {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle("格式化").
		WithWriter(w).
		WithRemoveWhenDone(true).
		Start()
	if err != nil {
		return &progressObserver{}
	}
	return &progressObserver{bar: bar}
}

func (p *progressObserver) OnStart(_, _ int, input string) {
	if p.bar != nil {
		p.bar.UpdateTitle(filepath.Base(input))
	}
}

func (p *progressObserver) OnFinish(_, _ int, _ batch.FileResult) {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Stop 结束进度条，nil 接收者为空操作
func (p *progressObserver) Stop() {
	if p == nil || p.bar == nil {
		return
	}
	_, _ = p.bar.Stop()
}

package editor

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/upload"
)

type uploadDoneMsg struct {
	id     int
	result upload.Result
}

type imagePickedMsg struct {
	id     int
	src    string
	err    error
	insert func(src string)
}

// DropFiles inserts an upload placeholder for every image among files at
// pos, or at the selection when pos is nil, and returns the command running
// the uploads. File data is read from disk when Data is empty.
func (m Model) DropFiles(pos *int, files ...upload.File) (Model, tea.Cmd) {
	if m.cfg.ReadOnly {
		return m, nil
	}
	jobs := upload.DropImages(m.st, pos, files)
	if len(jobs) == 0 {
		return m, nil
	}
	id, up := m.id, m.cfg.Uploader
	cmds := make([]tea.Cmd, 0, len(jobs))
	for _, job := range jobs {
		cmds = append(cmds, func() tea.Msg {
			if len(job.File.Data) == 0 {
				data, err := os.ReadFile(job.File.Name)
				if err != nil {
					return uploadDoneMsg{id: id, result: upload.Result{Job: job, Err: err}}
				}
				job.File.Data = data
			}
			return uploadDoneMsg{id: id, result: job.Run(context.Background(), up)}
		})
	}
	m.sync()
	return m, tea.Batch(cmds...)
}

func (m *Model) applyUpload(msg uploadDoneMsg) {
	if !msg.result.Apply(m.st) || msg.result.Err != nil {
		return
	}
	m.settle(msg.result.Src)
}

// settle releases an object URL once the image was drawn.
func (m *Model) settle(src string) {
	if upload.IsObjectURL(src) {
		m.frames.RequestFrame(m.objects.ReleaseOnSettle(src))
	}
}

func (m *Model) applyPicked(msg imagePickedMsg) {
	if msg.err != nil {
		m.cfg.Logger.Warn("Image upload failed", "error", msg.err)
		return
	}
	if msg.insert != nil {
		msg.insert(msg.src)
		m.settle(msg.src)
	}
}

// pickImage uploads the file at path for the palette image item.
func (m Model) pickImage(path string, insert func(src string)) tea.Cmd {
	id, up := m.id, m.cfg.Uploader
	return func() tea.Msg {
		f, err := readImage(path)
		if err != nil {
			return imagePickedMsg{id: id, err: err}
		}
		src, err := up.Upload(context.Background(), f)
		return imagePickedMsg{id: id, src: src, err: err, insert: insert}
	}
}

func fileType(name string) string {
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
}

func readImage(path string) (upload.File, error) {
	f := upload.File{Name: path, Type: fileType(path)}
	if !f.IsImage() {
		return upload.File{}, fmt.Errorf("%s: not an image", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return upload.File{}, err
	}
	f.Data = data
	return f, nil
}

// pastedFiles reports the image files named by pasted text. Terminals paste
// dropped files as one path per line, sometimes quoted or as file URLs.
func pastedFiles(text string) ([]upload.File, bool) {
	var out []upload.File
	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		p := strings.Trim(strings.TrimSpace(raw), `"'`)
		if strings.HasPrefix(p, "file://") {
			u, err := url.Parse(p)
			if err != nil {
				return nil, false
			}
			p = u.Path
		} else {
			p = strings.ReplaceAll(p, `\ `, " ")
		}
		if p == "" {
			continue
		}
		f := upload.File{Name: p, Type: fileType(p)}
		if !f.IsImage() {
			return nil, false
		}
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		out = append(out, f)
	}
	return out, len(out) > 0
}

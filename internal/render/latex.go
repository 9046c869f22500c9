package render

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Zuo-Peng/diarybook/internal/book"
	"github.com/Zuo-Peng/diarybook/internal/photo"
)

var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// EscapeLaTeX escapes the characters LaTeX treats specially in text.
func EscapeLaTeX(s string) string {
	return latexReplacer.Replace(s)
}

// GraphicsOptions are the \includegraphics options for p: its rotation,
// if any, then the width of one of two images per row.
func GraphicsOptions(p photo.Photo) string {
	opts := []string{}
	if a := p.RotationAngle(); a != 0 {
		opts = append(opts, fmt.Sprintf("angle=%d", a))
	}
	if p.Shape() == "portrait" {
		opts = append(opts, `height=0.3\textheight`)
	} else {
		opts = append(opts, `width=0.45\linewidth`)
	}
	return strings.Join(opts, ",")
}

// graphicsPath brace-wraps the file name so dots in it are not taken for
// the extension: photos/{IMG.0001}.jpg.
func graphicsPath(p string) string {
	p = filepath.ToSlash(p)
	dir, file := path.Split(p)
	ext := path.Ext(file)
	return dir + "{" + strings.TrimSuffix(file, ext) + "}" + ext
}

// paragraphs turns each body line into its own paragraph.
func paragraphs(body string) []string {
	var out []string
	for _, l := range strings.Split(body, "\n") {
		if strings.TrimSpace(l) != "" {
			out = append(out, EscapeLaTeX(strings.TrimSpace(l)))
		}
	}
	return out
}

func rows(photos []photo.Photo) [][]photo.Photo {
	var out [][]photo.Photo
	for i := 0; i < len(photos); i += 2 {
		end := i + 2
		if end > len(photos) {
			end = len(photos)
		}
		out = append(out, photos[i:end])
	}
	return out
}

var latexTemplate = template.Must(template.New("book").Delims("<<", ">>").Funcs(template.FuncMap{
	"esc":        EscapeLaTeX,
	"paragraphs": paragraphs,
	"rows":       rows,
	"graphics":   GraphicsOptions,
	"path":       graphicsPath,
}).Parse(`\documentclass[a4paper,11pt]{book}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage{graphicx}
\title{<< esc .Title >>}
\date{}
\begin{document}
\maketitle
<< range .Chapters >>
\section*{<< esc .Title >>}
\textit{<< .DateRange >>}
<< range .Entries >><< if .Body >>
<< range paragraphs .Body >>
<< . >>
<< end >><< end >><< end >>
<<- range rows .Photos >>
\begin{figure}[!h]
\centering
<< range $i, $p := . >><< if $i >>\hfill
<< end >>\includegraphics[<< graphics $p >>]{<< path $p.Path >>}%
<< end >>\end{figure}
<<- end >>
\clearpage
<< end >>
\end{document}
`))

// WriteLaTeX writes b as a LaTeX document: one unnumbered section per
// chapter, its text, then its photos two per row.
func WriteLaTeX(w io.Writer, b book.Book) error {
	if err := latexTemplate.Execute(w, b); err != nil {
		return fmt.Errorf("render latex: %w", err)
	}
	return nil
}

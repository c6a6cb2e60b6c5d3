package server

import _ "embed"

// indexPageHTML contains the embedded chat page template.
//
//go:embed web/index.html
var indexPageHTML string

// appJS contains the embedded chat page script.
//
//go:embed web/app.js
var appJS []byte

// styleCSS contains the embedded chat page stylesheet.
//
//go:embed web/style.css
var styleCSS []byte

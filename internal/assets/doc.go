// Package assets provides the theme stylesheets and the standalone document
// template.
//
// Assets come from a Source: the embedded one compiled into the binary, or a
// directory on disk laid out as
//
//	{dir}/
//	├── styles/{name}.css        # theme, scoped under .{name}-theme
//	└── templates/{name}.html    # html/template source (document.html)
//
// A Resolver looks in the directory first and falls back to the embedded
// assets for anything the directory does not provide, so one theme can be
// overridden while the others stay built in. Directory sources are opened
// with os.OpenRoot: names cannot traverse and symlinks cannot leave the
// directory.
package assets

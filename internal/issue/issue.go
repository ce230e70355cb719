// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	MenuFileNotFoundId Id = iota + 1
	MenuParseErrorId
	ConfigLoadFailedId
	ApplicationNotFoundId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is one catalog entry: a Markdown explanation plus reference links.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

var (
	render = glamour.Render

	menuFileNotFoundIssue = &Issue{
		id: MenuFileNotFoundId,
		mdMsg: `
# No menu file found!

xdgmenu looked for the root menu document but none of the candidates exist.

## Search locations (in order of precedence):
1. The ` + "`MENU`" + ` argument or the ` + "`menu_file`" + ` config key
2. ` + "`$XDG_CONFIG_HOME/menus/${XDG_MENU_PREFIX}applications.menu`" + `
3. ` + "`menus/${XDG_MENU_PREFIX}applications.menu`" + ` in every ` + "`$XDG_CONFIG_DIRS`" + ` entry
4. The same locations without the prefix

## Things you can try:
- Show the directories that are searched:
~~~
$ xdgmenu paths
~~~
- Point xdgmenu at a menu file directly:
~~~
$ xdgmenu resolve /etc/xdg/menus/applications.menu
~~~`,
		docLinks: []HttpLink{"https://specifications.freedesktop.org/menu-spec/latest/"},
	}

	menuParseErrorIssue = &Issue{
		id: MenuParseErrorId,
		mdMsg: `
# The menu file could not be read!

The root menu document is unreadable, is not well-formed XML, or its root
element is not ` + "`<Menu>`" + `.

## Things you can try:
- Check the XML syntax, for example with ` + "`xmllint --noout FILE`" + `
- Make sure the document starts with a ` + "`<Menu>`" + ` element
- Run with ` + "`--verbose`" + ` to see the full error chain`,
		docLinks: []HttpLink{"https://specifications.freedesktop.org/menu-spec/latest/"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load the configuration!

The config file does not match the expected schema.

## Things you can try:
- Show where the config file lives:
~~~
$ xdgmenu config path
~~~
- Print the effective configuration:
~~~
$ xdgmenu config show
~~~
- Regenerate a default config file:
~~~
$ xdgmenu config init --force
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	applicationNotFoundIssue = &Issue{
		id: ApplicationNotFoundId,
		mdMsg: `
# Application not found!

No application record with that identifier was found in the application
directories.

## Things you can try:
- List the identifiers that are known:
~~~
$ xdgmenu apps list
~~~
- Records in subdirectories are prefixed with the directory name, for example
  ` + "`kde/konsole.desktop`" + ` is ` + "`kde-konsole.desktop`",
		docLinks: []HttpLink{"https://specifications.freedesktop.org/desktop-entry-spec/latest/"},
	}

	issues = map[Id]*Issue{
		menuFileNotFoundIssue.Id():    menuFileNotFoundIssue,
		menuParseErrorIssue.Id():      menuParseErrorIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		applicationNotFoundIssue.Id(): applicationNotFoundIssue,
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the issue as styled terminal Markdown.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also:\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}

// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	FileNotFoundId Id = iota + 1
	ArchiveUnreadableId
	EntryExtractionFailedId
	AnalysisFailedId
	UnsupportedFormatId
	SelectionCancelledId
	NestedPathNotFoundId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue markdown with the glamour style at stylePath
// ("dark", "light", "notty", "auto" or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# File not found!

The file you passed to forge does not exist or is not a regular file.

## Things you can try:
- Check the path for typos
- Use an absolute path, or run forge from the directory holding the file`,
	}

	archiveUnreadableIssue = &Issue{
		id: ArchiveUnreadableId,
		mdMsg: `
# The archive could not be read!

forge reads zip and 7z archives. The file is either in another format,
truncated, or damaged.

## Things you can try:
- Download the archive again and compare its checksum
- List its entries with another tool:
~~~
$ unzip -l installer.zip
$ 7z l installer.7z
~~~`,
	}

	entryExtractionFailedIssue = &Issue{
		id: EntryExtractionFailedId,
		mdMsg: `
# An archive entry could not be extracted!

forge copies the chosen entry into a temporary file before analyzing it.

## Common causes:
- The entry uses a compression method forge does not support
- The entry data is corrupt (checksum mismatch)
- The temporary directory is full or not writable

## Things you can try:
- Point forge at another temporary directory:
~~~cue
temp_dir: "/var/tmp"
~~~
- Or set it for a single run:
~~~
$ FORGE_TEMP_DIR=/var/tmp forge nested installer.zip
~~~`,
	}

	analysisFailedIssue = &Issue{
		id: AnalysisFailedId,
		mdMsg: `
# The nested installer could not be analyzed!

The entry was extracted, but its content could not be parsed as an installer.

## Things you can try:
- Make sure the entry is really an installer and not a stub or a document
- Pass the path of the real installer explicitly:
~~~
$ forge nested installer.zip --path bin/setup.exe
~~~`,
	}

	unsupportedFormatIssue = &Issue{
		id: UnsupportedFormatId,
		mdMsg: `
# Unsupported installer format!

forge recognizes PE executables (including Inno Setup, Nullsoft and WiX Burn
bundles), MSI databases, MSIX/APPX packages and bundles, zip archives and fonts.

## Things you can try:
- Check that the file is not an HTML error page saved by a download tool
- Run ` + "`forge extensions`" + ` to see which nested file types are considered`,
	}

	selectionCancelledIssue = &Issue{
		id: SelectionCancelledId,
		mdMsg: `
# Selection cancelled!

The archive holds several possible installers and none was chosen.

## Things you can try:
- Run the command again and pick at least one file
- Skip the prompt by naming the file:
~~~
$ forge nested installer.zip --path x64/setup.exe
~~~`,
	}

	nestedPathNotFoundIssue = &Issue{
		id: NestedPathNotFoundId,
		mdMsg: `
# Nested installer path not found!

The path passed with ` + "`--path`" + ` does not name an archive entry. It was
recorded as given, but no type or architecture could be detected.

## Things you can try:
- Paths are matched exactly, including case and the ` + "`/`" + ` separators
- List the entries to find the right name:
~~~
$ unzip -l installer.zip
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

forge could not read or validate its configuration file.

## Things you can try:
- Check the CUE syntax of your config file
- Show where forge looks for it:
~~~
$ forge config path
~~~

- Write a fresh default configuration:
~~~
$ forge config init --force
~~~`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():          fileNotFoundIssue,
		archiveUnreadableIssue.Id():     archiveUnreadableIssue,
		entryExtractionFailedIssue.Id(): entryExtractionFailedIssue,
		analysisFailedIssue.Id():        analysisFailedIssue,
		unsupportedFormatIssue.Id():     unsupportedFormatIssue,
		selectionCancelledIssue.Id():    selectionCancelledIssue,
		nestedPathNotFoundIssue.Id():    nestedPathNotFoundIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
	}
)

// Values returns every issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return int(a.id - b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}

package model

import "fmt"

// Kind is the closed set of focusable dashboard regions.
type Kind int

const (
	KindEmpty Kind = iota
	KindLog
	KindBuild
	KindDeployment
	KindDatabase
	KindMiddle
	KindDialog
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindLog:
		return "Log"
	case KindBuild:
		return "Build"
	case KindDeployment:
		return "Deployment"
	case KindDatabase:
		return "Database"
	case KindMiddle:
		return "Middle"
	case KindDialog:
		return "Dialog"
	default:
		return "Unknown"
	}
}

// Tab is a page of the middle panel.
type Tab int

const (
	TabGCloud Tab = iota
	TabAppsignal
	TabDatabases
)

// Tabs lists the middle panel pages in display order; digit keys 1..3 pick
// them.
var Tabs = []Tab{TabGCloud, TabAppsignal, TabDatabases}

func (t Tab) String() string {
	switch t {
	case TabGCloud:
		return "GCloud"
	case TabAppsignal:
		return "AppSignal"
	case TabDatabases:
		return "Databases"
	default:
		return "Unknown"
	}
}

// DialogContext identifies which dialog a Dialog block is showing.
type DialogContext int

const (
	DialogNamespaceSelection DialogContext = iota
	DialogVersionSelection
	DialogLogSearch
	DialogLogIncludeFilter
	DialogLogExcludeFilter
	DialogLogTimeFilter
)

func (d DialogContext) String() string {
	switch d {
	case DialogNamespaceSelection:
		return "NamespaceSelection"
	case DialogVersionSelection:
		return "VersionSelection"
	case DialogLogSearch:
		return "LogSearch"
	case DialogLogIncludeFilter:
		return "LogIncludeFilter"
	case DialogLogExcludeFilter:
		return "LogExcludeFilter"
	case DialogLogTimeFilter:
		return "LogTimeFilter"
	default:
		return "Unknown"
	}
}

// IsTextInput reports whether the dialog edits text, in which case
// directional keys move the cursor instead of the focus.
func (d DialogContext) IsTextInput() bool {
	return d == DialogLogSearch || d == DialogLogIncludeFilter || d == DialogLogExcludeFilter
}

// Block is a tagged variant: Tab is only meaningful for KindMiddle and
// Dialog only for KindDialog. Blocks are comparable with ==.
type Block struct {
	Kind   Kind
	Tab    Tab
	Dialog DialogContext
}

func Empty() Block                   { return Block{Kind: KindEmpty} }
func Log() Block                     { return Block{Kind: KindLog} }
func Build() Block                   { return Block{Kind: KindBuild} }
func Deployment() Block              { return Block{Kind: KindDeployment} }
func Database() Block                { return Block{Kind: KindDatabase} }
func Middle(t Tab) Block             { return Block{Kind: KindMiddle, Tab: t} }
func Dialog(ctx DialogContext) Block { return Block{Kind: KindDialog, Dialog: ctx} }

// IsDialog reports whether b is a dialog showing ctx.
func (b Block) IsDialog(ctx DialogContext) bool {
	return b.Kind == KindDialog && b.Dialog == ctx
}

func (b Block) String() string {
	switch b.Kind {
	case KindMiddle:
		return fmt.Sprintf("Middle(%s)", b.Tab)
	case KindDialog:
		return fmt.Sprintf("Dialog(%s)", b.Dialog)
	default:
		return b.Kind.String()
	}
}

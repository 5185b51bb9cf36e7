package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

// Intent is one parsed console line. Args are canonical: vocabulary words
// are mapped to their build names, numbers stay as typed and free text
// keeps its original case.
type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext carries what the parser may resolve free text against.
type ParseContext struct {
	Items []string
	Ships []string
	// LastSlot is the env, category and index of the slot addressed last;
	// "it" and "that" stand for it.
	LastSlot []string
}

type CommandDef struct {
	Canonical  string
	Aliases    []string
	MinArgs    int
	MaxArgs    int
	HandlerKey string
	Usage      string
}

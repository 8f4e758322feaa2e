// Package rstast defines the abstract syntax tree produced by the RST
// parser: a tagged-variant node hierarchy plus the document-level
// cross-reference bookkeeping that accumulates while a source is parsed.
package rstast

// Kind tags the variant a Node represents. Go has no inheritance chains
// to lean on, so the node hierarchy described by the spec collapses to
// one struct type carrying a Kind discriminator; category membership
// (Inline, Body, Structural, Titular) becomes a predicate over Kind
// rather than a marker interface.
type Kind int

const (
	KindInvalid Kind = iota

	// Structural
	KindRoot
	KindSection
	KindTransition
	KindTitle

	// Block body
	KindParagraph
	KindBulletList
	KindEnumeratedList
	KindListItem
	KindDefinitionList
	KindDefinitionListItem
	KindTerm
	KindClassifier
	KindDefinition

	// Field lists
	KindFieldList
	KindField
	KindFieldName
	KindFieldBody

	// Option lists
	KindOptionList
	KindOptionListItem
	KindOptionGroup
	KindOption
	KindOptionString
	KindOptionArgument
	KindDescription

	// Other block elements
	KindLiteralBlock
	KindDoctestBlock
	KindLineBlock
	KindLine
	KindBlockQuote
	KindComment
	KindSubstitutionDefinition
	KindTarget
	KindFootnote
	KindCitation
	KindLabel
	KindTable
	KindCaption
	KindEntry

	// Inline
	KindText
	KindEmphasis
	KindStrong
	KindLiteral
	KindReference
	KindFootnoteReference
	KindCitationReference
	KindSubstitutionReference

	// Extended elements emitted by directive handlers
	KindDirective
	KindDirectiveArgument
	KindRole
	KindRefRole
	KindCode
	KindTargetIdentifier

	// Diagnostics
	KindSystemMessage
)

var kindNames = map[Kind]string{
	KindInvalid:                "invalid",
	KindRoot:                   "root",
	KindSection:                "section",
	KindTransition:             "transition",
	KindTitle:                  "title",
	KindParagraph:              "paragraph",
	KindBulletList:             "bullet_list",
	KindEnumeratedList:         "enumerated_list",
	KindListItem:               "list_item",
	KindDefinitionList:         "definition_list",
	KindDefinitionListItem:     "definition_list_item",
	KindTerm:                   "term",
	KindClassifier:             "classifier",
	KindDefinition:             "definition",
	KindFieldList:              "field_list",
	KindField:                  "field",
	KindFieldName:              "field_name",
	KindFieldBody:              "field_body",
	KindOptionList:             "option_list",
	KindOptionListItem:         "option_list_item",
	KindOptionGroup:            "option_group",
	KindOption:                 "option",
	KindOptionString:           "option_string",
	KindOptionArgument:         "option_argument",
	KindDescription:            "description",
	KindLiteralBlock:           "literal_block",
	KindDoctestBlock:           "doctest_block",
	KindLineBlock:              "line_block",
	KindLine:                   "line",
	KindBlockQuote:             "block_quote",
	KindComment:                "comment",
	KindSubstitutionDefinition: "substitution_definition",
	KindTarget:                 "target",
	KindFootnote:               "footnote",
	KindCitation:               "citation",
	KindLabel:                  "label",
	KindTable:                  "table",
	KindCaption:                "caption",
	KindEntry:                  "entry",
	KindText:                   "text",
	KindEmphasis:               "emphasis",
	KindStrong:                 "strong",
	KindLiteral:                "literal",
	KindReference:              "reference",
	KindFootnoteReference:      "footnote_reference",
	KindCitationReference:      "citation_reference",
	KindSubstitutionReference:  "substitution_reference",
	KindDirective:              "directive",
	KindDirectiveArgument:      "directive_argument",
	KindRole:                   "role",
	KindRefRole:                "ref_role",
	KindCode:                   "code",
	KindTargetIdentifier:       "target_identifier",
	KindSystemMessage:          "system_message",
}

// String renders a Kind by its docutils-style snake_case tag name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsInline reports whether a Kind belongs to the inline category:
// text-level constructs embedded within a paragraph or other body text.
func (k Kind) IsInline() bool {
	switch k {
	case KindText, KindEmphasis, KindStrong, KindLiteral, KindReference,
		KindFootnoteReference, KindCitationReference, KindSubstitutionReference,
		KindRole, KindRefRole, KindTargetIdentifier:
		return true
	default:
		return false
	}
}

// IsBody reports whether a Kind is a block-level body element.
func (k Kind) IsBody() bool {
	switch k {
	case KindParagraph, KindBulletList, KindEnumeratedList, KindListItem,
		KindDefinitionList, KindDefinitionListItem, KindTerm, KindClassifier,
		KindDefinition, KindFieldList, KindField, KindFieldName, KindFieldBody,
		KindOptionList, KindOptionListItem, KindOptionGroup, KindOption,
		KindOptionString, KindOptionArgument, KindDescription,
		KindLiteralBlock, KindDoctestBlock, KindLineBlock, KindLine,
		KindBlockQuote, KindComment, KindSubstitutionDefinition, KindTarget,
		KindFootnote, KindCitation, KindLabel, KindTable, KindCaption,
		KindEntry, KindDirective, KindCode, KindTitle:
		return true
	default:
		return false
	}
}

// IsStructural reports whether a Kind participates in document structure
// (holds sections and the document root itself).
func (k Kind) IsStructural() bool {
	switch k {
	case KindRoot, KindSection, KindTransition:
		return true
	default:
		return false
	}
}

// IsTitular reports whether a Kind may serve as a title-bearing element
// (only Section today; kept distinct from IsStructural because a future
// Document/Topic/Sidebar title-bearing node would join this set without
// becoming a transition/root).
func (k Kind) IsTitular() bool {
	return k == KindSection
}

// IsElement reports whether instances of this Kind are element nodes
// that carry ids/names bookkeeping in the owning Document (per the data
// model in spec.md — everything except bare Text and KindInvalid).
func (k Kind) IsElement() bool {
	return k != KindInvalid && k != KindText
}

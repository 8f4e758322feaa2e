package rstast

import (
	"fmt"

	"github.com/grove-platform/docparse/internal/rstid"
)

// nameRecord tracks what Document.name_ids/name_types store per spec.md
// §3: a nullable chosen id (nil = explicit duplicate with no surviving
// id) and whether the name was registered as explicit.
type nameRecord struct {
	id       *string
	explicit bool
}

// Document is the parse root: the Root node plus the cross-reference
// bookkeeping maps described in spec.md §3. Exactly one parse owns a
// Document; the caller must not share a Document across goroutines
// (spec.md §5).
type Document struct {
	*Node

	IDToElement map[string]*Node
	nameIDs     map[string]nameRecord
	RefNames    map[string][]*Node
	CitationRefs map[string][]*Node
	FootnoteRefs map[string][]*Node

	AutoFootnotes     []*Node
	SymbolFootnotes   []*Node
	Footnotes         []*Node
	Citations         []*Node
	IndirectTargets   []*Node

	CurrentSource string
	CurrentLine   int

	IDPrefix     string
	AutoIDPrefix string

	Reporter Reporter

	autoIDCounter int
	usedIDs       map[string]bool
}

// noopReporter satisfies Reporter for Documents constructed without an
// explicit one (unit tests of rstast in isolation); it still produces a
// real SystemMessage node so callers can't distinguish it from a wired
// reporter by inspecting the tree.
type noopReporter struct{}

func (noopReporter) SystemMessage(level Severity, message string, sourceID string, line int) *Node {
	n := NewNode(KindSystemMessage)
	n.SourceID = sourceID
	n.Line = line
	n.Text = message
	n.SetAttr("level", AttrInt(int(level)))
	return n
}

// NewDocument creates an empty Document rooted at a KindRoot node.
// idPrefix and autoIDPrefix configure auto-id generation per spec.md
// §4.H/§6 (OptionParser's id_prefix/auto_id_prefix); autoIDPrefix
// defaults to "id" when empty, matching the spec's documented default.
func NewDocument(sourceID, idPrefix, autoIDPrefix string, reporter Reporter) *Document {
	if autoIDPrefix == "" {
		autoIDPrefix = "id"
	}
	if reporter == nil {
		reporter = noopReporter{}
	}
	root := NewNode(KindRoot)
	root.SourceID = sourceID
	return &Document{
		Node:         root,
		IDToElement:  make(map[string]*Node),
		nameIDs:      make(map[string]nameRecord),
		RefNames:     make(map[string][]*Node),
		CitationRefs: make(map[string][]*Node),
		FootnoteRefs: make(map[string][]*Node),
		CurrentSource: sourceID,
		IDPrefix:      idPrefix,
		AutoIDPrefix:  autoIDPrefix,
		Reporter:      reporter,
		usedIDs:       make(map[string]bool),
	}
}

// NameIDs exposes the name→id lookup (nil id means an explicit
// duplicate with no surviving element) to tests and post-processors
// without exposing the mutable map directly.
func (d *Document) NameIDs() map[string]*string {
	out := make(map[string]*string, len(d.nameIDs))
	for name, rec := range d.nameIDs {
		out[name] = rec.id
	}
	return out
}

// NameExplicit reports whether name's most recent registration was
// explicit, and whether name is known at all.
func (d *Document) NameExplicit(name string) (explicit bool, known bool) {
	rec, ok := d.nameIDs[name]
	return rec.explicit, ok
}

// NewAutoID generates a fresh, globally unique element id by trying
// candidate names through MakeID (falling back to a synthetic counter
// id when every candidate collides or none are supplied), per spec.md
// §4.H.
func (d *Document) NewAutoID(candidates ...string) string {
	for _, candidate := range candidates {
		id := d.IDPrefix + rstid.MakeID(candidate)
		if id != d.IDPrefix && !d.usedIDs[id] {
			d.usedIDs[id] = true
			return id
		}
	}
	for {
		d.autoIDCounter++
		id := fmt.Sprintf("%s%s%d", d.IDPrefix, d.AutoIDPrefix, d.autoIDCounter)
		if !d.usedIDs[id] {
			d.usedIDs[id] = true
			return id
		}
	}
}

// reserveID marks id as used without going through name-candidate
// generation, for ids supplied explicitly in source (e.g. an explicit
// target's `.. _my-id:`).
func (d *Document) reserveID(id string) {
	d.usedIDs[id] = true
}

// RegisterElement records elem's ids in IDToElement and runs each of
// elem.Names through the duplicate-name resolution table (spec.md
// §4.H). explicit controls which column of the table applies; the
// identical-refuri fast path applies when both the prior and new
// registration are explicit duplicates whose refuri attributes match.
func (d *Document) RegisterElement(elem *Node, explicit bool) {
	for _, id := range elem.IDs {
		d.IDToElement[id] = elem
		d.reserveID(id)
	}
	for _, rawName := range elem.Names {
		name := rstid.FullyNormalizeName(rawName)
		d.resolveName(name, elem, explicit)
	}
}

// resolveName applies one row of the spec.md §4.H duplicate-name table
// for a single (name, explicit) registration against whatever is
// already on file for name.
func (d *Document) resolveName(name string, elem *Node, explicit bool) {
	prior, known := d.nameIDs[name]

	newID := ""
	if len(elem.IDs) > 0 {
		newID = elem.IDs[0]
	}

	switch {
	case !known:
		// – / – / yes-or-no -> register, explicit flag = new.
		d.nameIDs[name] = nameRecord{id: strPtr(newID), explicit: explicit}

	case !prior.explicit && explicit:
		if prior.id == nil {
			// null / false / yes -> warn implicit, register new.
			d.report(SeverityWarning, fmt.Sprintf("Duplicate implicit target name: %q", name), elem)
		} else {
			// set / false / yes -> demote prior, register new.
			d.markDuplicate(name, *prior.id)
		}
		d.nameIDs[name] = nameRecord{id: strPtr(newID), explicit: true}

	case prior.explicit && explicit:
		if prior.id == nil {
			// null / true / yes -> error (explicit duplicate).
			d.report(SeverityError, fmt.Sprintf("Duplicate explicit target name: %q", name), elem)
			d.nameIDs[name] = nameRecord{id: nil, explicit: true}
		} else {
			priorRefuri, priorHasRefuri := d.refuriOf(*prior.id)
			newRefuri, newHasRefuri := elem.Attr("refuri")
			if priorHasRefuri && newHasRefuri {
				if nv, ok := newRefuri.String(); ok && nv == priorRefuri {
					d.report(SeverityInfo, fmt.Sprintf("Duplicate explicit target name, but with matching "+
						"target URI: %q", name), elem)
					// keep prior; nameIDs entry unchanged.
					return
				}
			}
			d.report(SeverityError, fmt.Sprintf("Duplicate explicit target name: %q", name), elem)
			d.markDuplicate(name, *prior.id)
			d.nameIDs[name] = nameRecord{id: nil, explicit: true}
		}

	case !prior.explicit && !explicit:
		// (null|set) / false / no -> info implicit dup; id -> null.
		d.report(SeverityInfo, fmt.Sprintf("Duplicate implicit target name: %q", name), elem)
		d.nameIDs[name] = nameRecord{id: nil, explicit: false}

	case prior.explicit && !explicit:
		// (null|set) / true / no -> info implicit dup; keep prior id & explicit=true.
		d.report(SeverityInfo, fmt.Sprintf("Duplicate implicit target name: %q", name), elem)
		// nameIDs entry unchanged (prior.id, explicit=true retained).
	}
}

func (d *Document) refuriOf(id string) (string, bool) {
	elem, ok := d.IDToElement[id]
	if !ok {
		return "", false
	}
	v, ok := elem.Attr("refuri")
	if !ok {
		return "", false
	}
	s, ok := v.String()
	return s, ok
}

// markDuplicate appends name to the DupNames list of the element
// currently holding priorID, so that the element that lost the name
// still records it was once a candidate (spec.md §3: dup_names list).
func (d *Document) markDuplicate(name, priorID string) {
	if elem, ok := d.IDToElement[priorID]; ok {
		elem.DupNames = append(elem.DupNames, name)
	}
}

func (d *Document) report(level Severity, message string, elem *Node) *Node {
	source := elem.SourceID
	if source == "" {
		source = d.CurrentSource
	}
	line := elem.Line
	if line == 0 {
		line = d.CurrentLine
	}
	return d.Reporter.SystemMessage(level, message, source, line)
}

func strPtr(s string) *string { return &s }

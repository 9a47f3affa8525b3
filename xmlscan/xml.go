package xmlscan

import (
	"encoding/xml"
	"sync"
)

// XMLCharData produces an xml.CharData from a CharData token.
func XMLCharData(token []byte) (xml.CharData, error) {
	cd, err := CharData(token)
	if err != nil {
		return nil, err
	}
	return xml.CharData(cd), nil
}

// XMLDirective produces an xml.Directive from a Directive token.
func XMLDirective(token []byte) xml.Directive {
	return xml.Directive(Directive(token))
}

// XMLComment produces an xml.Comment from a Comment token.
func XMLComment(token []byte) xml.Comment {
	return xml.Comment(Comment(token))
}

// XMLProcInst produces an xml.ProcInst from a ProcInst token.
func XMLProcInst(token []byte) xml.ProcInst {
	target, inst := ProcInst(token)
	return xml.ProcInst{
		Target: unsafeString(target),
		Inst:   inst,
	}
}

// XMLName produces an xml.Name from a raw element or attribute name.
func XMLName(token []byte) xml.Name {
	space, local := SplitName(token)
	return xml.Name{
		Space: unsafeString(space),
		Local: unsafeString(local),
	}
}

// XMLAttr produces a decoded xml.Attr from a raw (key, value) pair.
func XMLAttr(key, value []byte) (attr xml.Attr, err error) {
	value, err = DecodeEntities(value)
	if err != nil {
		return
	}
	attr.Name = XMLName(key)
	attr.Value = unsafeString(value)
	return
}

var attrsPool = &sync.Pool{
	New: func() interface{} {
		return make([]xml.Attr, 0, 3)
	},
}

// XMLAttrs produces a []xml.Attr from a raw attribute section, reusing a
// pooled slice to reduce allocation churn when scanning many elements.
func XMLAttrs(attrsToken []byte) ([]xml.Attr, error) {
	attrs := attrsPool.Get().([]xml.Attr)
	if err := Attrs(attrsToken, func(key, value []byte) bool {
		attr, attrErr := XMLAttr(key, value)
		if attrErr != nil {
			return false
		}
		attrs = append(attrs, attr)
		return true
	}); err != nil {
		attrsPool.Put(attrs[:0])
		return nil, err
	}
	if len(attrs) == 0 {
		attrsPool.Put(attrs)
		return nil, nil
	}
	return attrs, nil
}

// XMLStartElement produces an xml.StartElement from an element token.
func XMLStartElement(token []byte) (xml.StartElement, error) {
	name, attrToken := Element(token)
	attrs, err := XMLAttrs(attrToken)
	if err != nil {
		return xml.StartElement{}, err
	}
	return xml.StartElement{
		Name: XMLName(name),
		Attr: attrs,
	}, nil
}

// XMLEndElement produces an xml.EndElement from an element token.
func XMLEndElement(token []byte) xml.EndElement {
	name, _ := Element(token)
	return xml.EndElement{Name: XMLName(name)}
}

// XMLElement dispatches to XMLStartElement or XMLEndElement based on
// IsEndElement.
func XMLElement(token []byte) (xml.Token, error) {
	if IsEndElement(token) {
		return XMLEndElement(token), nil
	}
	return XMLStartElement(token)
}

// XMLToken converts a raw Scanner token into an xml.Token.
func XMLToken(token []byte, chardata bool) (xml.Token, error) {
	switch {
	case chardata:
		return XMLCharData(token)
	case IsDirective(token):
		return XMLDirective(token), nil
	case IsComment(token):
		return XMLComment(token), nil
	case IsProcInst(token):
		return XMLProcInst(token), nil
	default:
		return XMLElement(token)
	}
}

// TokenReader adapts a *Scanner to the encoding/xml.TokenReader
// interface, so the TIC dispatch path can drive encoding/xml.Decoder
// over the same incremental, growable buffer the seek engine uses
// everywhere else.
type TokenReader struct {
	s    *Scanner
	next *xml.EndElement
}

// NewTokenReader wraps s as an xml.TokenReader.
func NewTokenReader(s *Scanner) *TokenReader {
	return &TokenReader{s: s}
}

// Token implements xml.TokenReader.
func (tr *TokenReader) Token() (xml.Token, error) {
	if tr.next != nil {
		token := *tr.next
		tr.next = nil
		return token, nil
	}
	rawToken, chardata, err := tr.s.Next()
	if err != nil {
		return nil, err
	}
	token, err := XMLToken(rawToken, chardata)
	if err != nil {
		return nil, err
	}
	if start, ok := token.(xml.StartElement); ok && IsSelfClosing(rawToken) {
		end := start.End()
		tr.next = &end
	}
	return token, nil
}

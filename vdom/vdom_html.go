// Copyright 2025, Riptide Authors
// SPDX-License-Identifier: Apache-2.0

package vdom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/riptidedev/riptide/vdom/cssparser"

	"github.com/wavetermdev/htmltoken"
)

// Bind tokenizes an HTML template into a vnode tree. Attribute values
// starting with "#param:" substitute values from params; a self-closing
// <bindparam key="..."/> splices a param (vnode, slice, or text) into the
// child list. A style attribute is parsed into the property mapping form.

const Html_ParamPrefix = "#param:"
const Html_BindParamTagName = "bindparam"

type bindFrame struct {
	tag   string
	props Props
	kids  []any
}

func pushBindFrame(stack []*bindFrame, frame *bindFrame) []*bindFrame {
	return append(stack, frame)
}

func popBindFrame(stack []*bindFrame) []*bindFrame {
	if len(stack) <= 1 {
		return stack
	}
	cur := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	appendBindChild(stack, H(cur.tag, cur.props, cur.kids...))
	return stack
}

func appendBindChild(stack []*bindFrame, child any) {
	if child == nil || len(stack) == 0 {
		return
	}
	parent := stack[len(stack)-1]
	parent.kids = append(parent.kids, child)
}

func curFrameTag(stack []*bindFrame) string {
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1].tag
}

func getAttrString(token htmltoken.Token, key string) string {
	for _, attr := range token.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func attrToProp(attrVal string, isJson bool, params map[string]any) any {
	if isJson {
		var val any
		err := json.Unmarshal([]byte(attrVal), &val)
		if err != nil {
			return nil
		}
		unmStrVal, ok := val.(string)
		if !ok {
			return val
		}
		attrVal = unmStrVal
		// fallthrough using the json str val
	}
	if strings.HasPrefix(attrVal, Html_ParamPrefix) {
		bindKey := attrVal[len(Html_ParamPrefix):]
		bindVal, ok := params[bindKey]
		if !ok {
			return nil
		}
		return bindVal
	}
	return attrVal
}

func tokenToFrame(token htmltoken.Token, params map[string]any) *bindFrame {
	frame := &bindFrame{tag: token.Data}
	if len(token.Attr) > 0 {
		frame.props = make(Props)
	}
	for _, attr := range token.Attr {
		if attr.Key == "" || attr.Val == "" {
			continue
		}
		propVal := attrToProp(attr.Val, attr.IsJson, params)
		if attr.Key == StylePropKey {
			if styleText, ok := propVal.(string); ok {
				propVal = parseStyleAttr(styleText, params)
			}
		}
		frame.props[attr.Key] = propVal
	}
	return frame
}

// parseStyleAttr converts a style attribute string into the mapping form
// the property writer diffs; on a parse error the raw cssText is kept.
func parseStyleAttr(styleText string, params map[string]any) any {
	decls, err := cssparser.Parse(styleText)
	if err != nil {
		log.Printf("vdom: bad style attribute: %v\n", err)
		return styleText
	}
	if len(decls) == 0 {
		return nil
	}
	rtn := make(map[string]any, len(decls))
	for _, decl := range decls {
		rtn[cssparser.CamelName(decl.Name)] = attrToProp(decl.Value, false, params)
	}
	return rtn
}

func isWsChar(char rune) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}

func isWsByte(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}

func isFirstCharLt(s string) bool {
	for _, char := range s {
		if isWsChar(char) {
			continue
		}
		return char == '<'
	}
	return false
}

func isLastCharGt(s string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		char := s[i]
		if isWsByte(char) {
			continue
		}
		return char == '>'
	}
	return false
}

func isAllWhitespace(s string) bool {
	for _, char := range s {
		if !isWsChar(char) {
			return false
		}
	}
	return true
}

func trimWhitespaceConditionally(s string) string {
	if isAllWhitespace(s) {
		return ""
	}
	// trim a line edge only when the adjacent markup is a tag boundary
	if isFirstCharLt(s) {
		s = strings.TrimLeftFunc(s, isWsChar)
	}
	if isLastCharGt(s) {
		s = strings.TrimRightFunc(s, isWsChar)
	}
	return s
}

func processWhitespace(htmlStr string) string {
	lines := strings.Split(htmlStr, "\n")
	var newLines []string
	for _, line := range lines {
		trimmedLine := trimWhitespaceConditionally(line + "\n")
		if trimmedLine == "" {
			continue
		}
		newLines = append(newLines, trimmedLine)
	}
	return strings.Join(newLines, "")
}

func processTextStr(s string) string {
	if s == "" {
		return ""
	}
	if isAllWhitespace(s) {
		return " "
	}
	return strings.TrimSpace(s)
}

// Bind parses an HTML template into a vnode tree, substituting params.
// A single root element returns that element; multiple roots return a
// Fragment; an empty template returns nil.
func Bind(htmlStr string, params map[string]any) *VNode {
	htmlStr = processWhitespace(htmlStr)
	reader := strings.NewReader(htmlStr)
	iter := htmltoken.NewTokenizer(reader)
	stack := []*bindFrame{{tag: FragmentTag}}
	var tokenErr error
outer:
	for {
		tokenType := iter.Next()
		token := iter.Token()
		switch tokenType {
		case htmltoken.StartTagToken:
			if token.Data == Html_BindParamTagName {
				tokenErr = errors.New("bindparam tags must be self closing")
				break outer
			}
			stack = pushBindFrame(stack, tokenToFrame(token, params))
		case htmltoken.EndTagToken:
			if token.Data == Html_BindParamTagName {
				tokenErr = errors.New("bindparam tags must be self closing")
				break outer
			}
			if len(stack) <= 1 {
				tokenErr = fmt.Errorf("end tag %q without start tag", token.Data)
				break outer
			}
			if curFrameTag(stack) != token.Data {
				tokenErr = fmt.Errorf("end tag %q does not match start tag %q", token.Data, curFrameTag(stack))
				break outer
			}
			stack = popBindFrame(stack)
		case htmltoken.SelfClosingTagToken:
			if token.Data == Html_BindParamTagName {
				keyAttr := getAttrString(token, "key")
				appendBindChild(stack, params[keyAttr])
				continue
			}
			frame := tokenToFrame(token, params)
			appendBindChild(stack, H(frame.tag, frame.props))
		case htmltoken.TextToken:
			textStr := processTextStr(token.Data)
			if textStr == "" {
				continue
			}
			appendBindChild(stack, textStr)
		case htmltoken.CommentToken:
			continue
		case htmltoken.DoctypeToken:
			tokenErr = errors.New("doctype not supported")
			break outer
		case htmltoken.ErrorToken:
			if iter.Err() == io.EOF {
				break outer
			}
			tokenErr = iter.Err()
			break outer
		}
	}
	if tokenErr != nil {
		appendBindChild(stack, tokenErr.Error())
	}
	for len(stack) > 1 {
		stack = popBindFrame(stack)
	}
	rootKids := stack[0].kids
	if len(rootKids) == 0 {
		return nil
	}
	if len(rootKids) == 1 {
		if elem, ok := rootKids[0].(*VNode); ok {
			return elem
		}
	}
	return H(Fragment, nil, rootKids...)
}

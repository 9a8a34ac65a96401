package shopping_list

import (
	"fmt"
	"strings"
)

type Item struct {
	Name  string
	Count int
}

// ShoppingList counts ingredients by exact name, keeping the order in which
// each name was first added.
type ShoppingList struct {
	items []Item
	index map[string]int
}

func New() *ShoppingList {
	return &ShoppingList{index: make(map[string]int)}
}

func (l *ShoppingList) Add(name string) {
	if i, ok := l.index[name]; ok {
		l.items[i].Count++
		return
	}
	l.index[name] = len(l.items)
	l.items = append(l.items, Item{Name: name, Count: 1})
}

func (l *ShoppingList) Items() []Item {
	return append([]Item(nil), l.items...)
}

func (l *ShoppingList) Distinct() int {
	return len(l.items)
}

func (l *ShoppingList) Total() int {
	total := 0
	for _, item := range l.items {
		total += item.Count
	}
	return total
}

// Line is "name" for a single occurrence and "name xN" otherwise.
func (i Item) Line() string {
	if i.Count == 1 {
		return i.Name
	}
	return fmt.Sprintf("%s x%d", i.Name, i.Count)
}

func (l *ShoppingList) Lines() []string {
	lines := make([]string, 0, len(l.items))
	for _, item := range l.items {
		lines = append(lines, item.Line())
	}
	return lines
}

// Render returns one newline-terminated line per item.
func (l *ShoppingList) Render() string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString(item.Line())
		sb.WriteByte('\n')
	}
	return sb.String()
}

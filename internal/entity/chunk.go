package entity

import "unicode/utf8"

// Chunk is one model window over the analyzed text
type Chunk struct {
	Index int
	Start int // Byte offset of Text within the full text
	Text  string
}

// Chunks covers text with windows of at most length bytes, each starting
// stride bytes after the previous one. Window edges are moved back to the
// nearest rune start so no chunk splits a multi-byte character. A stride
// that would leave no overlap is reduced to four fifths of length.
func Chunks(text string, length, stride int) []Chunk {
	if text == "" {
		return nil
	}
	if length <= 0 {
		length = 512
	}
	if stride <= 0 || stride >= length {
		stride = length * 4 / 5
	}
	if stride <= 0 {
		stride = 1
	}

	var chunks []Chunk
	start := 0
	for {
		end := runeFloor(text, start+length)
		if end <= start {
			// A single rune wider than the window
			_, size := utf8.DecodeRuneInString(text[start:])
			end = start + size
		}

		chunks = append(chunks, Chunk{Index: len(chunks), Start: start, Text: text[start:end]})
		if end >= len(text) {
			return chunks
		}

		next := runeFloor(text, start+stride)
		if next <= start {
			next = end
		}
		start = next
	}
}

// runeFloor clamps i to len(text) and moves it back to a rune start
func runeFloor(text string, i int) int {
	if i >= len(text) {
		return len(text)
	}
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// Package crosstalk maps text onto sequences of a six-symbol language and back,
// so two parties limited to a tiny shared symbol set can exchange arbitrary
// messages. The mapping is a public bijection, not a cipher.
//
// Components:
//   - Language: six distinct symbols. Presets: Common, Orcish, Debug.
//   - Translator: Encode / Decode / IsEncoded for one local language.
//   - Codebook: exported tables, serialisable with any codec.Codec.
//   - relay: a mailbox that vets posts with IsEncoded before storing them.
//
// Wire frame (one space between symbols):
//
//	head(3) | language(6) | codeword(3) * n | tail(3)
//	head = L5 L5 L1, tail = L5 L5 L0
//
// Every character of the source alphabet (Latin, a fixed Cyrillic set,
// digits, ASCII punctuation, space) owns one codeword. Because the frame
// announces its language, a Translator decodes frames written in any other
// language by remapping symbols position by position:
//
//	orc := crosstalk.MustNew(crosstalk.Orcish)
//	common := crosstalk.MustNew(crosstalk.Common)
//	w, _ := orc.Encode("Lok'tar")
//	msg, _ := common.Decode(w) // "Lok'tar"
//
// IsEncoded is the cheap, language independent shape check; it never
// decodes and never errors.
package crosstalk

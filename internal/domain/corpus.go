package domain

// TotalCorpusChars is the known character count of the reference corpus.
// Overall progress is normalized against this constant rather than the
// live parsed total, so formatting artifacts in a particular source file
// do not shift the displayed percentage.
const TotalCorpusChars = 3926926

// SampleCharCount is the character count credited to SampleText when
// measuring reading speed.
const SampleCharCount = 300

// SampleText is the passage read during the timed speed measurement.
const SampleText = `No princípio criou Deus os céus e a terra.
A terra era sem forma e vazia; e havia trevas sobre a face do abismo, mas o Espírito de Deus pairava sobre a face das águas.
Disse Deus: haja luz. E houve luz.
Viu Deus que a luz era boa; e fez separação entre a luz e as trevas.
E Deus chamou à luz dia`

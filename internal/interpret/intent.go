package interpret

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentAffirmative  Intent = "affirmative"
	IntentNegative     Intent = "negative"
	IntentOptionSelect Intent = "option_select"
	IntentPriceInquiry Intent = "price_inquiry"
	IntentTimeInquiry  Intent = "time_inquiry"
	IntentDoubt        Intent = "doubt"
	IntentProblem      Intent = "problem"
	IntentAutomation   Intent = "automation"
	IntentUnknown      Intent = "unknown"
)

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

var affirmativePatterns = compileAll([]string{
	`\bsi\b`, `\bsip\b`, `\bsep\b`, `\byes\b`, `\bsii+\b`,
	`\bok\b`, `\bokay\b`, `\bokey\b`, `\boka\b`,
	`\bdale\b`, `\bdalee+\b`,
	`\bvamos\b`, `\bva\b`, `\bvenga\b`,
	`\bacepto\b`, `\baceptar\b`, `\baceptado\b`,
	`\bclaro\b`, `\bclaramente\b`, `\bpor supuesto\b`,
	`\bperfecto\b`, `\bexcelente\b`, `\bgenial\b`, `\bsuper\b`,
	`\bbueno\b`, `\bbien\b`, `\bmuy bien\b`,
	`\bde acuerdo\b`, `\bdeacuerdo\b`, `\bme parece\b`,
	`\bhecho\b`, `\blisto\b`, `\bva que va\b`,
	`\bme gusta\b`, `\bme encanta\b`, `\bme agrada\b`,
	`\bconfirmado\b`, `\bconfirmo\b`,
	`\bprocedamos\b`, `\badelante\b`, `\bhagamoslo\b`,
	`\bme interesa\b`, `\binteresante\b`, `\bsuena bien\b`,
	`\bsuena interesante\b`, `\bme llama la atencion\b`,
	`\bquiero\b`, `\bquisiera\b`, `\bme gustaria\b`,
	`\bcuenta conmigo\b`, `\bestoy dentro\b`,
	`\bpor favor\b`, `\bporfavor\b`,
})

// negativePatterns intentionally excludes the bare word "no"; that case is
// handled by bareNegation below because a plain "no" followed by "me", "te",
// "se", "hay" or "tengo" usually starts a longer clause that is not a
// refusal ("no me interesa" is matched by its own pattern instead).
var negativePatterns = compileAll([]string{
	`^no$`, `^no,`, `^no\.`, `\bno gracias\b`,
	`\bdespues\b`, `\bluego\b`, `\bmas tarde\b`, `\botra vez\b`,
	`\bpensare\b`, `\bpensar\b`, `\blo pienso\b`, `\bdejame pensar\b`,
	`\bpensarlo\b`, `\blo pensare\b`, `\bvoy a pensar\b`,
	`\bconsultar\b`, `\bconsultarlo\b`, `\bpreguntar\b`, `\btengo que ver\b`,
	`\btengo que consultar\b`, `\bdebo consultar\b`, `\bvoy a consultar\b`,
	`\bno estoy seguro\b`, `\bno se\b`, `\bni idea\b`,
	`\bquiza\b`, `\btal vez\b`, `\ba lo mejor\b`,
	`\bpor ahora no\b`, `\btodavia no\b`, `\baun no\b`,
	`\bno creo\b`, `\bno puedo\b`, `\bno me convence\b`,
	`\bno me interesa\b`, `\bno es para mi\b`,
	`\bno es lo que busco\b`, `\bno aplica\b`,
	`\bmmm\b`, `\bhmm\b`, `\behh\b`,
	`\bdejame\b.*\bpensar\b`, `\btengo que\b.*\bpensar\b`,
})

var bareNo = regexp.MustCompile(`\bno\b`)

// bareNegationExceptions are the continuations after a bare "no" that keep
// it from counting as a refusal on its own.
var bareNegationExceptions = []string{" me", " te", " se", " hay", " tengo"}

// bareNegation reports whether the text contains a standalone "no" that is
// not immediately followed by one of the exception words.
func bareNegation(normalized string) bool {
	for _, loc := range bareNo.FindAllStringIndex(normalized, -1) {
		rest := normalized[loc[1]:]
		excepted := false
		for _, exc := range bareNegationExceptions {
			if strings.HasPrefix(rest, exc) {
				excepted = true
				break
			}
		}
		if !excepted {
			return true
		}
	}
	return false
}

var optionPatterns = map[int][]*regexp.Regexp{
	1: compileAll([]string{
		`\b(la |el |opcion |numero )?1\b`, `\buno\b`, `\buna\b`,
		`\b(la |el )?primer[ao]?\b`, `\bprimera opcion\b`,
		`\batencion\b`, `\b24.?7\b`, `\bsoporte\b`,
		`\bconsultas\b`, `\bresponder consultas\b`,
	}),
	2: compileAll([]string{
		`\b(la |el |opcion |numero )?2\b`, `\bdos\b`,
		`\b(la |el )?segund[ao]?\b`, `\bsegunda opcion\b`,
		`\bventas\b`, `\bleads\b`, `\bconversiones\b`,
		`\bcalificar\b`, `\bvender\b`,
	}),
	3: compileAll([]string{
		`\b(la |el |opcion |numero )?3\b`, `\btres\b`,
		`\b(la |el )?tercer[ao]?\b`, `\btercera opcion\b`,
		`\bpersonalizad[ao]\b`, `\ba medida\b`, `\bcustom\b`,
		`\bespecifico\b`, `\bunico\b`,
	}),
}

var pricePatterns = compileAll([]string{
	`\bprecio\b`, `\bcosto\b`, `\bvalor\b`,
	`\bpresupuesto\b`, `\binversion\b`, `\bdinero\b`,
	`\bcuanto cuesta\b`, `\bcuanto vale\b`, `\bque precio\b`,
	`\bcuanto sale\b`, `\bcuanto seria\b`, `\btarifa\b`,
	`\bpagaria\b`, `\bpagar\b`, `\bbarato\b`, `\bcaro\b`,
	`\beconomico\b`, `\bcostoso\b`, `\bprecio accesible\b`,
})

var timePatterns = compileAll([]string{
	`\btiempo\b`, `\bcuanto tarda\b`, `\bdemora\b`,
	`\brapido\b`, `\bplazo\b`, `\bcuando\b`,
	`\bimplementar\b`, `\bimplementacion\b`,
	`\bcuanto tiempo\b`, `\ben cuanto tiempo\b`,
	`\bduracion\b`, `\bfecha\b`, `\burgente\b`,
})

var doubtPatterns = compileAll([]string{
	`\bfunciona\b`, `\bseguro\b`, `\bgarantia\b`,
	`\bprueba\b`, `\bdemostrar\b`, `\bconfiar\b`,
	`\bcomo se\b`, `\bcomo funciona\b`, `\bcomo es\b`,
	`\bque pasa si\b`, `\by si\b`, `\bduda\b`,
	`\bno entiendo\b`, `\bexplicar\b`, `\baclarar\b`,
	`\bpreocupa\b`, `\briesgo\b`, `\bmiedito\b`,
})

var problemPatterns = compileAll([]string{
	`\bproblema\b`, `\bdificil\b`, `\bcomplicado\b`,
	`\breto\b`, `\bdesafio\b`, `\bdolor\b`,
	`\bfrustracion\b`, `\bfrustrante\b`, `\bmolest`,
	`\bno funciona\b`, `\bfalla\b`, `\berror\b`,
	`\bperdemos\b`, `\bperdiendo\b`, `\bdesperdicio\b`,
	`\bmucho trabajo\b`, `\bsobrecargado\b`, `\bagotad`,
})

var automationPatterns = compileAll([]string{
	`\bautomatizar\b`, `\bautomatizacion\b`, `\bautomatic`,
	`\bia\b`, `\binteligencia artificial\b`, `\brobot\b`,
	`\bbot\b`, `\bchatbot\b`, `\bagente\b`,
	`\bproceso\b`, `\bsistema\b`, `\bherramienta\b`,
})

// closeSignalPhrases are explicit "deal accepted" markers, typically
// reported by a seller ("dice que si") or stated by the customer directly.
var closeSignalPhrases = []string{
	"dice que si", "dijo que si", "acepta", "acepto",
	"quiere contratar", "quiere agendar", "listo para",
	"va a contratar", "quiere la demo", "quiere una demo",
	"quiere empezar", "quiere comenzar", "quiere probar",
	"me da sus datos", "me dio sus datos", "me paso su correo",
	"me compartio", "me comparti",
}

func matchesAny(normalized string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Interpreter classifies messages against fixed ordered pattern families.
// The zero value is ready to use; all pattern tables are package-level and
// compiled at init.
type Interpreter struct{}

// NewInterpreter returns an interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (in *Interpreter) matchesNegative(normalized string) bool {
	return bareNegation(normalized) || matchesAny(normalized, negativePatterns)
}

// DetectIntent classifies the message. Families are tested in a fixed
// order and the first match wins. A message matching both negative and
// affirmative markers resolves affirmative: Spanish negation fillers ("no,
// la verdad me interesa") are lexically common inside acceptances.
func (in *Interpreter) DetectIntent(message string) (Intent, float64) {
	normalized := Normalize(message)
	if normalized == "" {
		return IntentUnknown, 0.0
	}

	affirmative := matchesAny(normalized, affirmativePatterns)

	if in.matchesNegative(normalized) && !affirmative {
		return IntentNegative, 0.9
	}
	if affirmative {
		return IntentAffirmative, 0.9
	}
	if _, ok := in.DetectSelectedOption(message); ok {
		return IntentOptionSelect, 0.85
	}
	if matchesAny(normalized, pricePatterns) {
		return IntentPriceInquiry, 0.85
	}
	if matchesAny(normalized, timePatterns) {
		return IntentTimeInquiry, 0.8
	}
	if matchesAny(normalized, doubtPatterns) {
		return IntentDoubt, 0.75
	}
	if matchesAny(normalized, problemPatterns) {
		return IntentProblem, 0.8
	}
	if matchesAny(normalized, automationPatterns) {
		return IntentAutomation, 0.8
	}
	return IntentUnknown, 0.0
}

// DetectSelectedOption reports which of the three presented options the
// message selects, if any. Options are tested in order 1, 2, 3.
func (in *Interpreter) DetectSelectedOption(message string) (int, bool) {
	normalized := Normalize(message)
	for _, option := range []int{1, 2, 3} {
		if matchesAny(normalized, optionPatterns[option]) {
			return option, true
		}
	}
	return 0, false
}

// IsAffirmative reports whether the message classifies as an acceptance.
func (in *Interpreter) IsAffirmative(message string) bool {
	intent, confidence := in.DetectIntent(message)
	return intent == IntentAffirmative && confidence > 0.5
}

// IsNegative reports whether the message classifies as a refusal.
func (in *Interpreter) IsNegative(message string) bool {
	intent, confidence := in.DetectIntent(message)
	return intent == IntentNegative && confidence > 0.5
}

// IsPriceInquiry reports whether the message asks about price.
func (in *Interpreter) IsPriceInquiry(message string) bool {
	return matchesAny(Normalize(message), pricePatterns)
}

// IsTimeInquiry reports whether the message asks about timing.
func (in *Interpreter) IsTimeInquiry(message string) bool {
	return matchesAny(Normalize(message), timePatterns)
}

// HasDoubt reports whether the message expresses doubt.
func (in *Interpreter) HasDoubt(message string) bool {
	return matchesAny(Normalize(message), doubtPatterns)
}

// MentionsProblem reports whether the message describes a problem.
func (in *Interpreter) MentionsProblem(message string) bool {
	return matchesAny(Normalize(message), problemPatterns)
}

// MentionsAutomation reports whether the message mentions automation or AI.
func (in *Interpreter) MentionsAutomation(message string) bool {
	return matchesAny(Normalize(message), automationPatterns)
}

// IsCloseSignal reports whether the message contains an explicit
// deal-accepted phrase. A close signal forces the dialogue into the
// closing phase regardless of the current phase.
func (in *Interpreter) IsCloseSignal(message string) bool {
	normalized := Normalize(message)
	for _, phrase := range closeSignalPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

var keywordStopwords = map[string]struct{}{
	"el": {}, "la": {}, "los": {}, "las": {}, "un": {}, "una": {}, "unos": {}, "unas": {},
	"de": {}, "del": {}, "al": {}, "a": {}, "en": {}, "con": {}, "por": {}, "para": {},
	"que": {}, "se": {}, "es": {}, "son": {}, "esta": {}, "este": {}, "esto": {},
	"y": {}, "o": {}, "pero": {}, "si": {}, "no": {}, "me": {}, "te": {}, "mi": {}, "tu": {},
	"muy": {}, "mas": {}, "como": {}, "cuando": {}, "donde": {}, "porque": {},
	"hay": {}, "tiene": {}, "tengo": {}, "hacer": {}, "hago": {},
}

// ExtractKeywords returns the content words of the message, normalized and
// with common Spanish stopwords removed.
func (in *Interpreter) ExtractKeywords(message string) []string {
	var keywords []string
	for _, word := range strings.Fields(Normalize(message)) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := keywordStopwords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

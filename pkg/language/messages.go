package language

// Key identifies a localized assistant string.
type Key string

const (
	KeyWelcome            Key = "welcome"
	KeyFallback           Key = "fallback"
	KeyUnsupported        Key = "unsupported"
	KeyMicPermission      Key = "mic_permission"
	KeyNoSpeech           Key = "no_speech"
	KeyRecognitionFailed  Key = "recognition_failed"
	KeyRecognitionTimeout Key = "recognition_timeout"
	KeyPlaybackFailed     Key = "playback_failed"
	KeyPlaybackBlocked    Key = "playback_blocked"
	KeyListen             Key = "listen"
	KeyStopListening      Key = "stop_listening"
)

var messages = map[Key]map[string]string{
	KeyWelcome: {
		English:   "Hello! I'm VOXTEND, your digital welfare companion. I'm here to help you access government welfare schemes easily.",
		Hindi:     "नमस्कार! मैं VOXTEND हूं, आपका डिजिटल कल्याण सहायक। मैं आपको सरकारी योजनाओं के बारे में जानकारी देने में मदद करूंगा।",
		Telugu:    "నమస్కారం! నేను VOXTEND, మీ డిజిటల్ కల్యాణ సహాయకుడిని. ప్రభుత్వ పథకాల గురించి మీకు సహాయం చేస్తాను.",
		Tamil:     "வணக்கம்! நான் VOXTEND, உங்கள் டிஜிட்டல் நல்வாழ்வு உதவியாளர். அரசு நலத்திட்டங்களை அணுக உதவுகிறேன்.",
		Bengali:   "নমস্কার! আমি VOXTEND, আপনার ডিজিটাল কল্যাণ সহায়ক। সরকারি কল্যাণমূলক প্রকল্পে অ্যাক্সেস পেতে আমি আপনাকে সাহায্য করতে এখানে আছি।",
		Marathi:   "नमस्कार! मी VOXTEND, तुमचा डिजिटल कल्याण सहायक. सरकारी योजनांबद्दल माहिती मिळविण्यासाठी मी तुमच्या मदतीला आहे.",
		Gujarati:  "નમસ્તે! હું VOXTEND છું, તમારો ડિજિટલ કલ્યાણ સહાયક. સરકારી યોજનાઓ સુધી પહોંચવામાં હું તમારી સહાય કરીશ.",
		Kannada:   "ನಮಸ್ಕಾರ! ನಾನು VOXTEND, ನಿಮ್ಮ ಡಿಜಿಟಲ್ ಕಲ್ಯಾಣ ಸಹಾಯಕ. ಸರ್ಕಾರಿ ಯೋಜನೆಗಳಿಗೆ ಪ್ರವೇಶಿಸಲು ನಾನು ಇಲ್ಲಿದ್ದೇನೆ.",
		Malayalam: "നമസ്കാരം! ഞാൻ VOXTEND ആണ്, നിങ്ങളുടെ ഡിജിറ്റൽ ക്ഷേമ സഹായി. സർക്കാർ ക്ഷേമ പദ്ധതികളിലേക്ക് പ്രവേശിക്കാൻ ഞാൻ ഇവിടെയുണ്ട്.",
		Punjabi:   "ਸਤਿ ਸ੍ਰੀ ਅਕਾਲ! ਮੈਂ VOXTEND ਹਾਂ, ਤੁਹਾਡਾ ਡਿਜੀਟਲ ਕਲਿਆਣ ਸਹਾਇਕ। ਸਰਕਾਰੀ ਯੋਜਨਾਵਾਂ ਤੱਕ ਪਹੁੰਚ ਕਰਨ ਵਿੱਚ ਮੈਂ ਤੁਹਾਡੀ ਮਦਦ ਕਰਾਂਗਾ।",
		Odia:      "ନମସ୍କାର! ମୁଁ VOXTEND, ଆପଣଙ୍କର ଡିଜିଟାଲ୍ କଲ୍ୟାଣ ସାହାଯ୍ୟକାରୀ। ସରକାରୀ ଯୋଜନାଗୁଡ଼ିକୁ ଆସିବାରେ ମୁଁ ଆପଣଙ୍କୁ ସାହାଯ୍ୟ କରିବାକୁ ଆସିଛି।",
		Urdu:      "السلام علیکم! میں VOXTEND ہوں، آپ کا ڈیجیٹل بہبود کا ساتھی۔ سرکاری فلاحی اسکیموں تک رسائی حاصل کرنے میں آپ کی مدد کے لیے میں یہاں موجود ہوں۔",
	},
	KeyFallback: {
		English: "Sorry, I had trouble understanding. Please try again.",
		Hindi:   "क्षमा करें, मुझे आपकी बात समझने में समस्या हुई। कृपया फिर से कोशिश करें।",
		Telugu:  "క్షమించండి, మీ మాట అర్థం చేసుకోవడంలో సమస్య వచ్చింది. దయచేసి మళ్ళీ ప్రయత్నించండి.",
		Tamil:   "மன்னிக்கவும், உங்களைப் புரிந்துகொள்வதில் சிக்கல் ஏற்பட்டது. மீண்டும் முயற்சிக்கவும்.",
		Bengali: "দুঃখিত, আপনার কথা বুঝতে সমস্যা হয়েছে। অনুগ্রহ করে আবার চেষ্টা করুন।",
		Marathi: "क्षमस्व, मला तुमचे म्हणणे समजण्यात अडचण आली. कृपया पुन्हा प्रयत्न करा.",
		Urdu:    "معذرت، مجھے آپ کی بات سمجھنے میں دشواری ہوئی۔ براہ کرم دوبارہ کوشش کریں۔",
	},
	KeyUnsupported: {
		English: "Your browser does not support voice features. Please use Chrome or Firefox.",
		Hindi:   "आपका ब्राउज़र वॉयस सुविधाओं का समर्थन नहीं करता। कृपया Chrome या Firefox का उपयोग करें।",
	},
	KeyMicPermission: {
		English: "Microphone access was denied. Please allow microphone access and try again.",
		Hindi:   "माइक्रोफ़ोन की अनुमति नहीं मिली। कृपया अनुमति दें और फिर से कोशिश करें।",
	},
	KeyNoSpeech: {
		English: "I didn't hear anything. Please tap the microphone and speak.",
		Hindi:   "मुझे कुछ सुनाई नहीं दिया। कृपया माइक्रोफ़ोन दबाकर बोलें।",
	},
	KeyRecognitionFailed: {
		English: "Speech recognition failed. Please try again.",
		Hindi:   "आवाज़ पहचानने में समस्या हुई। कृपया फिर से कोशिश करें।",
	},
	KeyRecognitionTimeout: {
		English: "Listening timed out. Please tap the microphone to try again.",
		Hindi:   "सुनने का समय समाप्त हो गया। कृपया फिर से माइक्रोफ़ोन दबाएं।",
	},
	KeyPlaybackFailed: {
		English: "Failed to play audio. Please try again.",
		Hindi:   "ऑडियो चलाने में विफल। कृपया फिर से कोशिश करें।",
	},
	KeyPlaybackBlocked: {
		English: "Please allow audio playback to hear the response.",
		Hindi:   "उत्तर सुनने के लिए कृपया ऑडियो चलाने की अनुमति दें।",
	},
	KeyListen: {
		English:   "Start Listening",
		Hindi:     "सुनना शुरू करें",
		Telugu:    "వినడం ప్రారంభించండి",
		Tamil:     "கேட்கத் தொடங்கு",
		Bengali:   "শুনতে শুরু করুন",
		Marathi:   "ऐकणे सुरू करा",
		Gujarati:  "સાંભળવાનું શરૂ કરો",
		Kannada:   "ಕೇಳಲು ಪ್ರಾರಂಭಿಸಿ",
		Malayalam: "കേൾക്കാൻ തുടങ്ങുക",
		Punjabi:   "ਸੁਣਨਾ ਸ਼ੁਰੂ ਕਰੋ",
		Odia:      "ଶୁଣିବା ଆରମ୍ଭ କରନ୍ତୁ",
		Urdu:      "سننا شروع کریں",
	},
	KeyStopListening: {
		English:   "Stop Listening",
		Hindi:     "सुनना बंद करें",
		Telugu:    "వినడం ఆపండి",
		Tamil:     "நிறுத்து கேட்கிறது",
		Bengali:   "শোনা বন্ধ করুন",
		Marathi:   "ऐकणे थांबवा",
		Gujarati:  "સાંભળવાનું બંધ કરો",
		Kannada:   "ಆಲಿಸುವುದನ್ನು ನಿಲ್ಲಿಸಿ",
		Malayalam: "കേൾക്കുന്നത് നിർത്തുക",
		Punjabi:   "ਸੁਣਨਾ ਬੰਦ ਕਰੋ",
		Odia:      "ଶୁଣିବା ବନ୍ଦ କରନ୍ତୁ",
		Urdu:      "سننا بند کریں",
	},
}

// Text returns the string for key in the given language, falling back to
// English and finally to the key itself.
func Text(key Key, code string) string {
	byLang, ok := messages[key]
	if !ok {
		return string(key)
	}
	if l, ok := Lookup(code); ok {
		if s, ok := byLang[l.Code]; ok {
			return s
		}
	}
	if s, ok := byLang[English]; ok {
		return s
	}
	return string(key)
}

// Welcome is the greeting appended when a session starts or its language changes.
func Welcome(code string) string { return Text(KeyWelcome, code) }

// Fallback is the apology used when no answer could be produced.
func Fallback(code string) string { return Text(KeyFallback, code) }

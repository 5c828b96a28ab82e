// Package voice is the voice interaction state machine of the assistant.
//
// A Session ties together five parts for one user:
//
//   - DetectCapabilities checks the platform recognizer and speaker.
//   - RecognitionController owns the single speech-to-text session.
//   - Orchestrator turns a final transcript into an answer, with script based
//     language detection, scheme matching and a bounded reasoning call that
//     falls back to a localized apology.
//   - PlaybackController owns the single outgoing audio session; starting a
//     new one cancels the old one first.
//   - Log is the append-only conversation history.
//
// The platform (a browser over the bridge, a terminal, or a test fake) is
// reached only through the Recognizer and Speaker interfaces. Platform
// events carry the id of the session they belong to and events for a
// session that is no longer current are ignored.
//
// # Usage
//
//	orch := voice.NewOrchestrator(provider, scheme.Default())
//	sess, err := voice.NewSession(recognizer, speaker, orch,
//	    voice.WithLanguage("hi"),
//	    voice.WithSynthesizer(ttsProvider),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sess.Close()
//
//	unsubscribe := sess.Subscribe(func(e voice.Event) {
//	    if e.Type == voice.EventTurn {
//	        fmt.Printf("%s: %s\n", e.Turn.Role, e.Turn.Text)
//	    }
//	})
//	defer unsubscribe()
//
//	sess.Start(ctx)
//	sess.StartListening()
//
// Final transcripts are submitted automatically. Typed questions go through
// Submit. The answer is spoken when it differs from the last spoken text and
// the session is neither listening nor processing.
//
// # Latency Metrics
//
// Each session tracks per-turn latency:
//
//	m := sess.Metrics().Average()
//	fmt.Println(m.FormatLatency())
package voice

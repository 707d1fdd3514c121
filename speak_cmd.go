package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voicestudio/voicestudio/internal/pipeline"
	"github.com/voicestudio/voicestudio/internal/voice"
)

var (
	speakVoiceLabel string
	speakVoiceID    string
	speakRate       int
	speakPitch      int
	speakTranslate  bool
	speakOutput     string
	speakFromClip   bool

	speakCmd = &cobra.Command{
		Use:   "speak [FILE]",
		Short: "Synthesize a text file (or stdin, or the clipboard) to an MP3",
		Example: "voicestudio speak diary.txt -o diary.mp3\n" +
			"cat notes.txt | voicestudio speak --translate\n" +
			"voicestudio speak --from-clipboard --voice-id en-GB-LibbyNeural",
		Args: cobra.MaximumNArgs(1),
		RunE: runSpeak,
	}
)

// readSpeakInput collects the text to synthesize: clipboard, file, or
// stdin, in that priority.
func readSpeakInput(args []string) (string, error) {
	if speakFromClip {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("unable to read clipboard: %w", err)
		}
		return text, nil
	}

	if len(args) == 1 && args[0] != "-" {
		b, err := os.ReadFile(expandPath(args[0]))
		if err != nil {
			return "", fmt.Errorf("unable to open file: %w", err)
		}
		return string(b), nil
	}

	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("unable to read stdin: %w", err)
	}
	return string(b), nil
}

func runSpeak(cmd *cobra.Command, args []string) error {
	text, err := readSpeakInput(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("nothing to synthesize")
	}

	id := voice.Lookup(speakVoiceLabel).ID
	if speakVoiceID != "" {
		id = speakVoiceID
	}
	profile, err := voice.NewProfile(id, speakRate, speakPitch)
	if err != nil {
		return err
	}

	engine := engineName
	if engine == "" {
		engine = viper.GetString("engine")
	}
	streamer, err := buildStreamer(engine)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if speakTranslate {
		text = buildTranslator().ToEnglish(ctx, text)
	}

	orch := pipeline.New(streamer,
		pipeline.WithMaxChars(viper.GetInt("chunk.max_chars")),
		pipeline.WithLogger(log.Default()))

	res, err := orch.Synthesize(ctx, text, profile)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	out := speakOutput
	if out == "" {
		out = fmt.Sprintf("diary_%d.mp3", time.Now().Unix())
	}
	out = expandPath(out)
	if err := os.WriteFile(out, res.Audio, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("unable to write output: %w", err)
	}

	log.Info("wrote audio",
		"path", out,
		"voice", profile.ID,
		"segments", res.Segments,
		"size", humanize.Bytes(uint64(len(res.Audio))))
	return nil
}

func init() {
	speakCmd.Flags().StringVar(&speakVoiceLabel, "voice", voice.DefaultPreset().Label, "preset voice label")
	speakCmd.Flags().StringVar(&speakVoiceID, "voice-id", "", "service voice identifier (overrides --voice)")
	speakCmd.Flags().IntVar(&speakRate, "rate", 0, "speaking rate offset in percent")
	speakCmd.Flags().IntVar(&speakPitch, "pitch", 0, "pitch offset in Hz")
	speakCmd.Flags().BoolVar(&speakTranslate, "translate", false, "machine-translate the text to English first")
	speakCmd.Flags().StringVarP(&speakOutput, "output", "o", "", "output MP3 path (default diary_<unix>.mp3)")
	speakCmd.Flags().BoolVar(&speakFromClip, "from-clipboard", false, "read the text from the system clipboard")
}

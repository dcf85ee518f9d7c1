package pipeline

import (
	"encoding/json"
	"testing"
	"time"
)

func decodeEnvelope(t *testing.T, payload string) Envelope {
	t.Helper()

	var envelope Envelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		t.Fatalf("failed to decode envelope %q: %v", payload, err)
	}
	return envelope
}

func TestStageChangeRequiresStageType(t *testing.T) {
	envelope := decodeEnvelope(t, `{"type": "stage", "stage": "writer"}`)
	if stage, ok := envelope.StageChange(); !ok || stage != StageWriter {
		t.Fatalf("expected stage change to writer, got %q (ok %v)", stage, ok)
	}

	envelope = decodeEnvelope(t, `{"type": "content", "stage": "writer", "content": "x"}`)
	if _, ok := envelope.StageChange(); ok {
		t.Fatalf("expected content record to carry no stage change")
	}
}

func TestStageChunksRouteToSideChannels(t *testing.T) {
	testCases := []struct {
		name          string
		payload       string
		expectedStage string
	}{
		{name: "director chunk", payload: `{"type": "director_chunk", "content": "Once"}`, expectedStage: StageDirector},
		{name: "paint chunk", payload: `{"type": "paint_chunk", "content": "Once"}`, expectedStage: StagePaintDirector},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			envelope := decodeEnvelope(t, testCase.payload)

			stage, segment, ok := envelope.StageChunk()
			if !ok || stage != testCase.expectedStage || segment != "Once" {
				t.Fatalf("expected chunk for %q, got stage %q segment %q (ok %v)", testCase.expectedStage, stage, segment, ok)
			}

			if _, contentOK := envelope.ContentSegment(); contentOK {
				t.Fatalf("stage chunks must not double as primary content segments")
			}
		})
	}
}

func TestStageFinalsReplaceSideChannels(t *testing.T) {
	envelope := decodeEnvelope(t, `{"type": "outline", "content": "1. Setup"}`)
	if stage, output, ok := envelope.StageFinal(); !ok || stage != StageDirector || output != "1. Setup" {
		t.Fatalf("expected director final, got stage %q output %q (ok %v)", stage, output, ok)
	}

	envelope = decodeEnvelope(t, `{"type": "image", "prompt": "a castle", "url": "https://img/1.png"}`)
	stage, output, ok := envelope.StageFinal()
	if !ok || stage != StagePaintDirector || output != "a castle" {
		t.Fatalf("expected paint director final, got stage %q output %q (ok %v)", stage, output, ok)
	}

	// The same record carries the rendered image facet.
	if url, prompt, imageOK := envelope.Image(); !imageOK || url != "https://img/1.png" || prompt != "a castle" {
		t.Fatalf("expected image facet on the same record, got url %q prompt %q (ok %v)", url, prompt, imageOK)
	}
}

func TestContentSegmentAcceptsTypedAndUntypedRecords(t *testing.T) {
	envelope := decodeEnvelope(t, `{"type": "content", "content": "upon a"}`)
	if segment, ok := envelope.ContentSegment(); !ok || segment != "upon a" {
		t.Fatalf("expected typed content segment, got %q (ok %v)", segment, ok)
	}

	envelope = decodeEnvelope(t, `{"content": "Hello", "message_id": "srv-1"}`)
	if segment, ok := envelope.ContentSegment(); !ok || segment != "Hello" {
		t.Fatalf("expected untyped content segment, got %q (ok %v)", segment, ok)
	}
	if messageID, ok := envelope.AssignedMessageID(); !ok || messageID != "srv-1" {
		t.Fatalf("expected assigned message id on the same record, got %q (ok %v)", messageID, ok)
	}

	envelope = decodeEnvelope(t, `{"type": "outline", "content": "not a delta"}`)
	if _, ok := envelope.ContentSegment(); ok {
		t.Fatalf("expected stage-typed content to stay off the primary message")
	}
}

func TestAudioClipsDecodeProducerFieldNames(t *testing.T) {
	envelope := decodeEnvelope(t, `{"type": "audio", "data": [{"character": "Mira", "emotion": "wry", "audio_url": "https://a/1.mp3"}]}`)

	clips := envelope.AudioClips()
	if len(clips) != 1 {
		t.Fatalf("expected one audio clip, got %d", len(clips))
	}
	if clips[0].Speaker != "Mira" || clips[0].Emotion != "wry" || clips[0].URL != "https://a/1.mp3" {
		t.Fatalf("unexpected clip decoded: %+v", clips[0])
	}

	untyped := decodeEnvelope(t, `{"data": [{"character": "Mira", "audio_url": "https://a/1.mp3"}]}`)
	if clips := untyped.AudioClips(); clips != nil {
		t.Fatalf("expected no clips without the audio type, got %+v", clips)
	}
}

func TestPostProcessedArrivesStandaloneOrEmbeddedInDone(t *testing.T) {
	envelope := decodeEnvelope(t, `{"type": "processed_content", "content": "HELLO WORLD"}`)
	if content, ok := envelope.PostProcessed(); !ok || content != "HELLO WORLD" {
		t.Fatalf("expected standalone post-processed content, got %q (ok %v)", content, ok)
	}

	envelope = decodeEnvelope(t, `{"done": true, "message_id": "srv-1", "processed_content": "HELLO WORLD"}`)
	if content, ok := envelope.PostProcessed(); !ok || content != "HELLO WORLD" {
		t.Fatalf("expected embedded post-processed content, got %q (ok %v)", content, ok)
	}
	if !envelope.IsDone() {
		t.Fatalf("expected the same record to mark completion")
	}

	envelope = decodeEnvelope(t, `{"done": true}`)
	if _, ok := envelope.PostProcessed(); ok {
		t.Fatalf("expected bare completion to carry no replacement content")
	}
}

func TestFailureReadsBothErrorShapes(t *testing.T) {
	envelope := decodeEnvelope(t, `{"error": "model overloaded"}`)
	if reason, ok := envelope.Failure(); !ok || reason != "model overloaded" {
		t.Fatalf("expected plain error facet, got %q (ok %v)", reason, ok)
	}

	envelope = decodeEnvelope(t, `{"type": "error", "stage": "tts", "message": "synthesis failed"}`)
	if reason, ok := envelope.Failure(); !ok || reason != "synthesis failed" {
		t.Fatalf("expected stage error facet, got %q (ok %v)", reason, ok)
	}
}

func TestStageLifecycleRecords(t *testing.T) {
	envelope := decodeEnvelope(t, `{"type": "stage_complete", "stage": "director", "duration_ms": 1500}`)
	stage, duration, ok := envelope.StageCompleted()
	if !ok || stage != StageDirector || duration != 1500*time.Millisecond {
		t.Fatalf("expected director completion at 1.5s, got stage %q duration %v (ok %v)", stage, duration, ok)
	}

	envelope = decodeEnvelope(t, `{"type": "stage_skipped", "stage": "tts", "reason": "no dialogue"}`)
	stage, reason, ok := envelope.StageSkipped()
	if !ok || stage != StageTTS || reason != "no dialogue" {
		t.Fatalf("expected tts skip, got stage %q reason %q (ok %v)", stage, reason, ok)
	}

	envelope = decodeEnvelope(t, `{"type": "run_started", "run_id": "run-7"}`)
	if runID, ok := envelope.RunStarted(); !ok || runID != "run-7" {
		t.Fatalf("expected run id, got %q (ok %v)", runID, ok)
	}

	envelope = decodeEnvelope(t, `{"type": "run_complete", "run_id": "run-7"}`)
	if runID, ok := envelope.RunCompleted(); !ok || runID != "run-7" {
		t.Fatalf("expected run completion, got %q (ok %v)", runID, ok)
	}
	if envelope.IsDone() {
		t.Fatalf("expected run completion not to imply turn completion")
	}
}

func TestSideChannelStages(t *testing.T) {
	if !SideChannelStage(StageDirector) || !SideChannelStage(StagePaintDirector) {
		t.Fatalf("expected director stages to keep side channels")
	}
	if SideChannelStage(StageWriter) || SideChannelStage(StageTTS) {
		t.Fatalf("expected writer and tts to have no side channels")
	}
}

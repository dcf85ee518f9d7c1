// Package events defines the typed state-change notification contract.
//
// Every mutation the reconciliation engine applies to conversation state is
// mirrored by exactly one event, so a consumer that replays the log observes
// the same state the engine holds. Event kinds are grouped by receiver-facing
// namespaces:
//
//   - message.*
//   - stage.*
//   - media.*
//   - turn_state.*
//
// Semantics used across the package:
//
//   - Segment: append-only text piece emitted in stream order.
//   - Replaced: wholesale substitution of previously streamed text.
//   - Final: terminal immutable text for the current stage.
//
// message events
//
//   - MessageAdded (message.added): a new message entered the conversation.
//   - MessageContentSegment (message.content_segment): streamed text delta
//     appended to a message.
//   - MessageContentReplaced (message.content_replaced): message content
//     replaced wholesale by the post-processing pass.
//   - MessageIDAssigned (message.id_assigned): the provisional message id was
//     rewritten to the server-assigned one.
//
// stage events
//
//   - StageChanged (stage.changed): the pipeline entered a named stage.
//   - StageOutputSegment (stage.output_segment): side-channel accumulator
//     grew by a delta.
//   - StageOutputFinal (stage.output_final): side-channel accumulator was
//     replaced by the stage's completed payload.
//   - StageCompleted (stage.completed): a stage finished.
//   - StageSkipped (stage.skipped): a stage was skipped by the producer.
//
// media events
//
//   - ImageAdded (media.image_added): rendered image attached to a message.
//   - AudioAdded (media.audio_added): synthesized speech clips attached to a
//     message.
//
// turn_state events
//
//   - RunStarted (turn_state.run_started): the producer opened a pipeline
//     run for the turn.
//   - RunCompleted (turn_state.run_completed): the producer finished the
//     pipeline run.
//   - TurnStarted (turn_state.started): a turn session began streaming.
//   - TurnCompleted (turn_state.completed): the turn reached its normal
//     terminal state.
//   - TurnFailed (turn_state.failed): the turn failed; Reason carries the
//     user-visible error text.
//   - TurnCancelled (turn_state.cancelled): the turn was cancelled or
//     superseded; not an error.
package events

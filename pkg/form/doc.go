// Package form wires the field registry, validation trigger policy, draft
// write-through, submission gating and alert aggregation into one event-driven
// form instance.
//
// Validation triggers follow the touched state of each field:
//
//   - changing an untouched field never runs validation;
//   - blurring a field marks it touched and runs full-form validation,
//     because cross-field error context may change;
//   - changing an already-touched field revalidates immediately so feedback
//     stays live;
//   - submitting marks every field touched and always validates.
//
// Errors reported for untouched fields are never displayed. Each validation
// pass replaces the previous result wholesale, so a field that becomes valid
// loses its errors in the same pass.
//
// All entry points are serialized by one mutex: a triggering event's
// validation run completes atomically with respect to form state before the
// next event is processed. The only asynchronous edge is the external submit
// handler, whose completion the caller signals via FinishSubmission.
package form

package command

import "fmt"

// getMoreElements answers GET_MORE_ELEMENTS: it destructively pops queued
// continuation elements from the front, stopping before the response would
// exceed its byte budget.
type getMoreElements struct{}

func (getMoreElements) code() byte {
	return CodeGetMoreElements
}

func (getMoreElements) execute(st *sessionState, req []byte) ([]byte, error) {
	if len(req) != 1 {
		return nil, fmt.Errorf("%w: request is opcode only, got %d bytes", ErrMalformedRequest, len(req))
	}
	if st.queue.empty() {
		return nil, ErrQueueEmpty
	}
	// The leaf proof command only ever queues same-length elements; a
	// mismatch here means the session state is corrupt.
	elemLen, ok := st.queue.uniformLen()
	if !ok {
		return nil, ErrQueueInconsistent
	}

	payload := make([]byte, 0, moreElementsCap)
	popped := 0
	for !st.queue.empty() && len(payload)+elemLen <= moreElementsCap {
		el, _ := st.queue.pop()
		payload = append(payload, el...)
		popped++
	}

	resp := make([]byte, 0, 2+len(payload))
	resp = append(resp, byte(popped), byte(elemLen))
	resp = append(resp, payload...)
	return resp, nil
}

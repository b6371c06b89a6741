package actions

import (
	"github.com/gagliardetto/solana-go"
)

type NoticeKind int

const (
	Success NoticeKind = iota
	Failure
)

func (k NoticeKind) String() string {
	if k == Success {
		return "success"
	}
	return "failure"
}

// Notice is the user-facing outcome of an action.
type Notice struct {
	Kind      NoticeKind
	Message   string
	Signature solana.Signature
	Err       error
}

func (n Notice) OK() bool {
	return n.Kind == Success
}

func success(msg string, sig solana.Signature) Notice {
	return Notice{Kind: Success, Message: msg, Signature: sig}
}

func failure(msg string, err error) Notice {
	return Notice{Kind: Failure, Message: msg, Err: err}
}

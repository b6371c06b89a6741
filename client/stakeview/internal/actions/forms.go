package actions

import "context"

// StakeForm holds the stake inputs. Fields are cleared only after a
// successful submission.
type StakeForm struct {
	MintAddress    string
	CollectionMint string
}

func (f *StakeForm) Submit(ctx context.Context, a *Actions) Notice {
	n := a.Stake(ctx, f.MintAddress, f.CollectionMint)
	if n.OK() {
		f.MintAddress = ""
		f.CollectionMint = ""
	}
	return n
}

// UnstakeForm holds the unstake input.
type UnstakeForm struct {
	MintAddress string
}

func (f *UnstakeForm) Submit(ctx context.Context, a *Actions) Notice {
	n := a.Unstake(ctx, f.MintAddress)
	if n.OK() {
		f.MintAddress = ""
	}
	return n
}

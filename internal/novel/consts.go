package novel

const (
	SimHz             = 20.0 // server tick rate
	Dt                = 1.0 / SimHz
	UpdateRateHz      = 10.0 // per-client WS state pushes
	MinChoices        = 2    // fewer branches never show the choice UI
	MaxChoices        = 4    // choice panels exist for 2, 3 and 4 options
	DefaultPlayerName = "Aki"
	IdleTimeoutS      = 600.0 // detached playthroughs are dropped after this long
)

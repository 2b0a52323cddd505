package parkour

import "github.com/oomph-ac/locomotion/oerror"

// Trigger rejections. None of them change any state.
var (
	ErrBusy            = oerror.New("parkour already in progress or input locked")
	ErrNoObstacle      = oerror.New("no obstacle in front")
	ErrNotParkourable  = oerror.New("obstacle is not parkourable")
	ErrNoTopSurface    = oerror.New("obstacle has no top surface")
	ErrObstacleTooTall = oerror.New("obstacle too tall")
	ErrNoLandingGround = oerror.New("no ground behind obstacle")
	ErrLandingBlocked  = oerror.New("landing blocked")
	ErrApexBlocked     = oerror.New("apex blocked")
)

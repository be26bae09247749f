package taggle

// Scanner states, ported one-for-one from HTMLScanner's S_* constants.
type scanState int

const (
	sANAME     scanState = 1
	sAPOS      scanState = 2
	sAVAL      scanState = 3
	sBB        scanState = 4
	sBBC       scanState = 5
	sBBCD      scanState = 6
	sBBCDA     scanState = 7
	sBBCDAT    scanState = 8
	sBBCDATA   scanState = 9
	sCDATA     scanState = 10
	sCDATA2    scanState = 11
	sCDSECT    scanState = 12
	sCDSECT1   scanState = 13
	sCDSECT2   scanState = 14
	sCOM       scanState = 15
	sCOM2      scanState = 16
	sCOM3      scanState = 17
	sCOM4      scanState = 18
	sDECL      scanState = 19
	sDECL2     scanState = 20
	sDONE      scanState = 21
	sEMPTYTAG  scanState = 22
	sENT       scanState = 23
	sEQ        scanState = 24
	sETAG      scanState = 25
	sGI        scanState = 26
	sNCR       scanState = 27
	sPCDATA    scanState = 28
	sPI        scanState = 29
	sPITARGET  scanState = 30
	sQUOT      scanState = 31
	sSTAGC     scanState = 32
	sTAG       scanState = 33
	sTAGWS     scanState = 34
	sXNCR      scanState = 35
)

// Scanner actions, ported one-for-one from HTMLScanner's A_* constants.
type scanAction int

const (
	aADUP             scanAction = 1
	aADUP_SAVE        scanAction = 2
	aADUP_STAGC       scanAction = 3
	aANAME            scanAction = 4
	aANAME_ADUP       scanAction = 5
	aANAME_ADUP_STAGC scanAction = 6
	aAVAL             scanAction = 7
	aAVAL_STAGC       scanAction = 8
	aCDATA            scanAction = 9
	aCMNT             scanAction = 10
	aDECL             scanAction = 11
	aEMPTYTAG         scanAction = 12
	aENTITY           scanAction = 13
	aENTITY_START     scanAction = 14
	aETAG             scanAction = 15
	aGI               scanAction = 16
	aGI_STAGC         scanAction = 17
	aLT               scanAction = 18
	aLT_PCDATA        scanAction = 19
	aMINUS            scanAction = 20
	aMINUS2           scanAction = 21
	aMINUS3           scanAction = 22
	aPCDATA           scanAction = 23
	aPI               scanAction = 24
	aPITARGET         scanAction = 25
	aPITARGET_PI      scanAction = 26
	aSAVE             scanAction = 27
	aSKIP             scanAction = 28
	aSP               scanAction = 29
	aSTAGC            scanAction = 30
	aUNGET            scanAction = 31
	aUNSAVE_PCDATA    scanAction = 32
)

// scanTransition is one (state, matchChar, action, nextState) row.
// matchChar == 0 is the wildcard: it fires only if no row in the same
// state block matches the input character exactly.
// matchChar == -1 matches end of input.
type scanTransition struct {
	state     scanState
	matchChar rune
	action    scanAction
	next      scanState
}

// statetable is HTMLScanner's statetable[], transcribed row for row.
var statetable = []scanTransition{
	{sANAME, '/', aANAME_ADUP, sEMPTYTAG},
	{sANAME, '=', aANAME, sAVAL},
	{sANAME, '>', aANAME_ADUP_STAGC, sPCDATA},
	{sANAME, 0, aSAVE, sANAME},
	{sANAME, -1, aANAME_ADUP_STAGC, sDONE},
	{sANAME, ' ', aANAME, sEQ},
	{sANAME, '\n', aANAME, sEQ},
	{sANAME, '\t', aANAME, sEQ},

	{sAPOS, '\'', aAVAL, sTAGWS},
	{sAPOS, 0, aSAVE, sAPOS},
	{sAPOS, -1, aAVAL_STAGC, sDONE},
	{sAPOS, ' ', aSP, sAPOS},
	{sAPOS, '\n', aSP, sAPOS},
	{sAPOS, '\t', aSP, sAPOS},

	{sAVAL, '\'', aSKIP, sAPOS},
	{sAVAL, '"', aSKIP, sQUOT},
	{sAVAL, '>', aAVAL_STAGC, sPCDATA},
	{sAVAL, 0, aSAVE, sSTAGC},
	{sAVAL, -1, aAVAL_STAGC, sDONE},
	{sAVAL, ' ', aSKIP, sAVAL},
	{sAVAL, '\n', aSKIP, sAVAL},
	{sAVAL, '\t', aSKIP, sAVAL},

	{sBB, 'C', aSKIP, sBBC},
	{sBB, 0, aSKIP, sDECL},
	{sBB, -1, aSKIP, sDONE},

	{sBBC, 'D', aSKIP, sBBCD},
	{sBBC, 0, aSKIP, sDECL},
	{sBBC, -1, aSKIP, sDONE},

	{sBBCD, 'A', aSKIP, sBBCDA},
	{sBBCD, 0, aSKIP, sDECL},
	{sBBCD, -1, aSKIP, sDONE},

	{sBBCDA, 'T', aSKIP, sBBCDAT},
	{sBBCDA, 0, aSKIP, sDECL},
	{sBBCDA, -1, aSKIP, sDONE},

	{sBBCDAT, 'A', aSKIP, sBBCDATA},
	{sBBCDAT, 0, aSKIP, sDECL},
	{sBBCDAT, -1, aSKIP, sDONE},

	{sBBCDATA, '[', aSKIP, sCDSECT},
	{sBBCDATA, 0, aSKIP, sDECL},
	{sBBCDATA, -1, aSKIP, sDONE},

	{sCDATA, '<', aSAVE, sCDATA2},
	{sCDATA, 0, aSAVE, sCDATA},
	{sCDATA, -1, aPCDATA, sDONE},

	{sCDATA2, '/', aUNSAVE_PCDATA, sETAG},
	{sCDATA2, 0, aSAVE, sCDATA},
	{sCDATA2, -1, aUNSAVE_PCDATA, sDONE},

	{sCDSECT, ']', aSAVE, sCDSECT1},
	{sCDSECT, 0, aSAVE, sCDSECT},
	{sCDSECT, -1, aSKIP, sDONE},

	{sCDSECT1, ']', aSAVE, sCDSECT2},
	{sCDSECT1, 0, aSAVE, sCDSECT},
	{sCDSECT1, -1, aSKIP, sDONE},

	{sCDSECT2, '>', aCDATA, sPCDATA},
	{sCDSECT2, 0, aSAVE, sCDSECT},
	{sCDSECT2, -1, aSKIP, sDONE},

	{sCOM, '-', aSKIP, sCOM2},
	{sCOM, 0, aSAVE, sCOM2},
	{sCOM, -1, aCMNT, sDONE},

	{sCOM2, '-', aSKIP, sCOM3},
	{sCOM2, 0, aSAVE, sCOM2},
	{sCOM2, -1, aCMNT, sDONE},

	{sCOM3, '-', aSKIP, sCOM4},
	{sCOM3, 0, aMINUS, sCOM2},
	{sCOM3, -1, aCMNT, sDONE},

	{sCOM4, '-', aMINUS3, sCOM4},
	{sCOM4, '>', aCMNT, sPCDATA},
	{sCOM4, 0, aMINUS2, sCOM2},
	{sCOM4, -1, aCMNT, sDONE},

	{sDECL, '-', aSKIP, sCOM},
	{sDECL, '[', aSKIP, sBB},
	{sDECL, '>', aSKIP, sPCDATA},
	{sDECL, 0, aSAVE, sDECL2},
	{sDECL, -1, aSKIP, sDONE},

	{sDECL2, '>', aDECL, sPCDATA},
	{sDECL2, 0, aSAVE, sDECL2},
	{sDECL2, -1, aSKIP, sDONE},

	{sEMPTYTAG, '>', aEMPTYTAG, sPCDATA},
	{sEMPTYTAG, 0, aSAVE, sANAME},
	{sEMPTYTAG, ' ', aSKIP, sTAGWS},
	{sEMPTYTAG, '\n', aSKIP, sTAGWS},
	{sEMPTYTAG, '\t', aSKIP, sTAGWS},

	{sENT, 0, aENTITY, sENT},
	{sENT, -1, aENTITY, sDONE},

	{sEQ, '=', aSKIP, sAVAL},
	{sEQ, '>', aADUP_STAGC, sPCDATA},
	{sEQ, 0, aADUP_SAVE, sANAME},
	{sEQ, -1, aADUP_STAGC, sDONE},
	{sEQ, ' ', aSKIP, sEQ},
	{sEQ, '\n', aSKIP, sEQ},
	{sEQ, '\t', aSKIP, sEQ},

	{sETAG, '>', aETAG, sPCDATA},
	{sETAG, 0, aSAVE, sETAG},
	{sETAG, -1, aETAG, sDONE},
	{sETAG, ' ', aSKIP, sETAG},
	{sETAG, '\n', aSKIP, sETAG},
	{sETAG, '\t', aSKIP, sETAG},

	{sGI, '/', aSKIP, sEMPTYTAG},
	{sGI, '>', aGI_STAGC, sPCDATA},
	{sGI, 0, aSAVE, sGI},
	{sGI, -1, aSKIP, sDONE},
	{sGI, ' ', aGI, sTAGWS},
	{sGI, '\n', aGI, sTAGWS},
	{sGI, '\t', aGI, sTAGWS},

	{sNCR, 0, aENTITY, sNCR},
	{sNCR, -1, aENTITY, sDONE},

	{sPCDATA, '&', aENTITY_START, sENT},
	{sPCDATA, '<', aPCDATA, sTAG},
	{sPCDATA, 0, aSAVE, sPCDATA},
	{sPCDATA, -1, aPCDATA, sDONE},

	{sPI, '>', aPI, sPCDATA},
	{sPI, 0, aSAVE, sPI},
	{sPI, -1, aPI, sDONE},

	{sPITARGET, '>', aPITARGET_PI, sPCDATA},
	{sPITARGET, 0, aSAVE, sPITARGET},
	{sPITARGET, -1, aPITARGET_PI, sDONE},
	{sPITARGET, ' ', aPITARGET, sPI},
	{sPITARGET, '\n', aPITARGET, sPI},
	{sPITARGET, '\t', aPITARGET, sPI},

	{sQUOT, '"', aAVAL, sTAGWS},
	{sQUOT, 0, aSAVE, sQUOT},
	{sQUOT, -1, aAVAL_STAGC, sDONE},
	{sQUOT, ' ', aSP, sQUOT},
	{sQUOT, '\n', aSP, sQUOT},
	{sQUOT, '\t', aSP, sQUOT},

	{sSTAGC, '>', aAVAL_STAGC, sPCDATA},
	{sSTAGC, 0, aSAVE, sSTAGC},
	{sSTAGC, -1, aAVAL_STAGC, sDONE},
	{sSTAGC, ' ', aAVAL, sTAGWS},
	{sSTAGC, '\n', aAVAL, sTAGWS},
	{sSTAGC, '\t', aAVAL, sTAGWS},

	{sTAG, '!', aSKIP, sDECL},
	{sTAG, '?', aSKIP, sPITARGET},
	{sTAG, '/', aSKIP, sETAG},
	{sTAG, '<', aSAVE, sTAG},
	{sTAG, 0, aSAVE, sGI},
	{sTAG, -1, aLT_PCDATA, sDONE},
	{sTAG, ' ', aLT, sPCDATA},
	{sTAG, '\n', aLT, sPCDATA},
	{sTAG, '\t', aLT, sPCDATA},

	{sTAGWS, '/', aSKIP, sEMPTYTAG},
	{sTAGWS, '>', aSTAGC, sPCDATA},
	{sTAGWS, 0, aSAVE, sANAME},
	{sTAGWS, -1, aSTAGC, sDONE},
	{sTAGWS, ' ', aSKIP, sTAGWS},
	{sTAGWS, '\n', aSKIP, sTAGWS},
	{sTAGWS, '\t', aSKIP, sTAGWS},

	{sXNCR, 0, aENTITY, sXNCR},
	{sXNCR, -1, aENTITY, sDONE},
}

const hexLetters = "abcdefABCDEF"

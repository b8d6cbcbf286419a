/*
NAME
  systemfiles.go

DESCRIPTION
  systemfiles.go implements the fixed-shape bodies of the D7A system files:
  FirmwareVersion, FactorySettings, EngineeringMode, DllConfig, DllStatus,
  PhyStatus and SecurityKey.
*/

package file

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/physical"
)

// FirmwareVersion is the FirmwareVersion system file's body: a major/minor
// pair plus fixed-width application name and git commit strings.
type FirmwareVersion struct {
	Major           uint8
	Minor           uint8
	ApplicationName string // 6 bytes on the wire
	GitSha1         string // 7 bytes on the wire
}

func decodeFixedString(r *bits.Reader, n int, field string) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", d7err.UnexpectedEndOf(field)
	}
	return string(b), nil
}

func encodeFixedString(w *bits.Writer, s string, n int) error {
	buf := make([]byte, n)
	copy(buf, s)
	return w.WriteBytes(buf)
}

// DecodeFirmwareVersion reads a FirmwareVersion from r.
func DecodeFirmwareVersion(r *bits.Reader) (FirmwareVersion, error) {
	major, err := r.ReadBits(8)
	if err != nil {
		return FirmwareVersion{}, d7err.UnexpectedEndOf("FirmwareVersion.major", err)
	}
	minor, err := r.ReadBits(8)
	if err != nil {
		return FirmwareVersion{}, d7err.UnexpectedEndOf("FirmwareVersion.minor", err)
	}
	appName, err := decodeFixedString(r, 6, "FirmwareVersion.application_name")
	if err != nil {
		return FirmwareVersion{}, err
	}
	sha, err := decodeFixedString(r, 7, "FirmwareVersion.git_sha1")
	if err != nil {
		return FirmwareVersion{}, err
	}
	return FirmwareVersion{Major: uint8(major), Minor: uint8(minor), ApplicationName: appName, GitSha1: sha}, nil
}

// EncodeFirmwareVersion writes f to w.
func EncodeFirmwareVersion(w *bits.Writer, f FirmwareVersion) error {
	if err := w.WriteBits(uint32(f.Major), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(f.Minor), 8); err != nil {
		return err
	}
	if err := encodeFixedString(w, f.ApplicationName, 6); err != nil {
		return err
	}
	return encodeFixedString(w, f.GitSha1, 7)
}

// FactorySettings is the FactorySettings system file's body: the radio
// calibration and preamble parameters set at manufacture time.
type FactorySettings struct {
	Gain                           int8
	RxBwLowRate                    uint32
	RxBwNormalRate                 uint32
	RxBwHighRate                   uint32
	BitrateLoRate                  uint32
	FdevLoRate                     uint32
	BitrateNormalRate              uint32
	FdevNormalRate                 uint32
	BitrateHiRate                  uint32
	FdevHiRate                     uint32
	PreambleSizeLoRate             uint8
	PreambleSizeNormalRate         uint8
	PreambleSizeHiRate             uint8
	PreambleDetectorSizeLoRate     uint8
	PreambleDetectorSizeNormalRate uint8
	PreambleDetectorSizeHiRate     uint8
	PreambleTolLoRate              uint8
	PreambleTolNormalRate          uint8
	PreambleTolHiRate              uint8
	RssiSmoothing                  uint8
	RssiOffset                     uint8
	LoraBw                         uint32
	LoraSf                         uint8
	Gaussian                       uint8
	Paramp                         uint16
}

// DecodeFactorySettings reads a FactorySettings from r.
func DecodeFactorySettings(r *bits.Reader) (FactorySettings, error) {
	var f FactorySettings
	u8 := func(field string) (uint8, error) {
		v, err := r.ReadBits(8)
		if err != nil {
			return 0, d7err.UnexpectedEndOf(field)
		}
		return uint8(v), nil
	}
	u16 := func(field string) (uint16, error) {
		v, err := r.ReadBits(16)
		if err != nil {
			return 0, d7err.UnexpectedEndOf(field)
		}
		return uint16(v), nil
	}
	u32 := func(field string) (uint32, error) {
		v, err := r.ReadBits(32)
		if err != nil {
			return 0, d7err.UnexpectedEndOf(field)
		}
		return v, nil
	}

	gain, err := u8("FactorySettings.gain")
	if err != nil {
		return FactorySettings{}, err
	}
	f.Gain = int8(gain)

	if f.RxBwLowRate, err = u32("FactorySettings.rx_bw_low_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.RxBwNormalRate, err = u32("FactorySettings.rx_bw_normal_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.RxBwHighRate, err = u32("FactorySettings.rx_bw_high_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.BitrateLoRate, err = u32("FactorySettings.bitrate_lo_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.FdevLoRate, err = u32("FactorySettings.fdev_lo_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.BitrateNormalRate, err = u32("FactorySettings.bitrate_normal_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.FdevNormalRate, err = u32("FactorySettings.fdev_normal_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.BitrateHiRate, err = u32("FactorySettings.bitrate_hi_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.FdevHiRate, err = u32("FactorySettings.fdev_hi_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleSizeLoRate, err = u8("FactorySettings.preamble_size_lo_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleSizeNormalRate, err = u8("FactorySettings.preamble_size_normal_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleSizeHiRate, err = u8("FactorySettings.preamble_size_hi_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleDetectorSizeLoRate, err = u8("FactorySettings.preamble_detector_size_lo_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleDetectorSizeNormalRate, err = u8("FactorySettings.preamble_detector_size_normal_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleDetectorSizeHiRate, err = u8("FactorySettings.preamble_detector_size_hi_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleTolLoRate, err = u8("FactorySettings.preamble_tol_lo_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleTolNormalRate, err = u8("FactorySettings.preamble_tol_normal_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.PreambleTolHiRate, err = u8("FactorySettings.preamble_tol_hi_rate"); err != nil {
		return FactorySettings{}, err
	}
	if f.RssiSmoothing, err = u8("FactorySettings.rssi_smoothing"); err != nil {
		return FactorySettings{}, err
	}
	if f.RssiOffset, err = u8("FactorySettings.rssi_offset"); err != nil {
		return FactorySettings{}, err
	}
	if f.LoraBw, err = u32("FactorySettings.lora_bw"); err != nil {
		return FactorySettings{}, err
	}
	if f.LoraSf, err = u8("FactorySettings.lora_sf"); err != nil {
		return FactorySettings{}, err
	}
	if f.Gaussian, err = u8("FactorySettings.gaussian"); err != nil {
		return FactorySettings{}, err
	}
	if f.Paramp, err = u16("FactorySettings.paramp"); err != nil {
		return FactorySettings{}, err
	}
	return f, nil
}

// EncodeFactorySettings writes f to w.
func EncodeFactorySettings(w *bits.Writer, f FactorySettings) error {
	fields := []struct {
		value uint32
		bits  int
	}{
		{uint32(uint8(f.Gain)), 8},
		{f.RxBwLowRate, 32},
		{f.RxBwNormalRate, 32},
		{f.RxBwHighRate, 32},
		{f.BitrateLoRate, 32},
		{f.FdevLoRate, 32},
		{f.BitrateNormalRate, 32},
		{f.FdevNormalRate, 32},
		{f.BitrateHiRate, 32},
		{f.FdevHiRate, 32},
		{uint32(f.PreambleSizeLoRate), 8},
		{uint32(f.PreambleSizeNormalRate), 8},
		{uint32(f.PreambleSizeHiRate), 8},
		{uint32(f.PreambleDetectorSizeLoRate), 8},
		{uint32(f.PreambleDetectorSizeNormalRate), 8},
		{uint32(f.PreambleDetectorSizeHiRate), 8},
		{uint32(f.PreambleTolLoRate), 8},
		{uint32(f.PreambleTolNormalRate), 8},
		{uint32(f.PreambleTolHiRate), 8},
		{uint32(f.RssiSmoothing), 8},
		{uint32(f.RssiOffset), 8},
		{f.LoraBw, 32},
		{uint32(f.LoraSf), 8},
		{uint32(f.Gaussian), 8},
		{uint32(f.Paramp), 16},
	}
	for _, fl := range fields {
		if err := w.WriteBits(fl.value, fl.bits); err != nil {
			return err
		}
	}
	return nil
}

// EngineeringModeMethod names the radio test mode EngineeringMode selects.
type EngineeringModeMethod uint8

const (
	EngineeringModeOff         EngineeringModeMethod = 0
	EngineeringModeContTx      EngineeringModeMethod = 1
	EngineeringModeTransientTx EngineeringModeMethod = 2
	EngineeringModePerRx       EngineeringModeMethod = 3
	EngineeringModePerTx       EngineeringModeMethod = 4
)

// EngineeringMode is the EngineeringMode system file's body.
type EngineeringMode struct {
	Mode    EngineeringModeMethod
	Flags   uint8
	Timeout uint8
	Channel physical.Channel
	Eirp    int8
}

// DecodeEngineeringMode reads an EngineeringMode from r.
func DecodeEngineeringMode(r *bits.Reader) (EngineeringMode, error) {
	mode, err := r.ReadBits(8)
	if err != nil {
		return EngineeringMode{}, d7err.UnexpectedEndOf("EngineeringMode.mode", err)
	}
	flags, err := r.ReadBits(8)
	if err != nil {
		return EngineeringMode{}, d7err.UnexpectedEndOf("EngineeringMode.flags", err)
	}
	timeout, err := r.ReadBits(8)
	if err != nil {
		return EngineeringMode{}, d7err.UnexpectedEndOf("EngineeringMode.timeout", err)
	}
	ch, err := physical.DecodeChannel(r)
	if err != nil {
		return EngineeringMode{}, err
	}
	eirp, err := r.ReadBits(8)
	if err != nil {
		return EngineeringMode{}, d7err.UnexpectedEndOf("EngineeringMode.eirp", err)
	}
	return EngineeringMode{
		Mode:    EngineeringModeMethod(mode),
		Flags:   uint8(flags),
		Timeout: uint8(timeout),
		Channel: ch,
		Eirp:    int8(eirp),
	}, nil
}

// EncodeEngineeringMode writes e to w.
func EncodeEngineeringMode(w *bits.Writer, e EngineeringMode) error {
	if err := w.WriteBits(uint32(e.Mode), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(e.Flags), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(e.Timeout), 8); err != nil {
		return err
	}
	if err := physical.EncodeChannel(w, e.Channel); err != nil {
		return err
	}
	return w.WriteBits(uint32(uint8(e.Eirp)), 8)
}

// DllConfig is the DllConfig system file's body: the link-layer access
// class and noise-floor calibration parameters.
type DllConfig struct {
	AC                  uint8
	LqFilter            uint8
	NfCtrl              uint8
	RxNfMethodParameter uint8
	TxNfMethodParameter uint8
}

// DecodeDllConfig reads a DllConfig from r. Two bytes between AC and
// LqFilter are reserved padding.
func DecodeDllConfig(r *bits.Reader) (DllConfig, error) {
	ac, err := r.ReadBits(8)
	if err != nil {
		return DllConfig{}, d7err.UnexpectedEndOf("DllConfig.ac", err)
	}
	if _, err := r.ReadBits(16); err != nil {
		return DllConfig{}, d7err.UnexpectedEndOf("DllConfig.reserved")
	}
	lq, err := r.ReadBits(8)
	if err != nil {
		return DllConfig{}, d7err.UnexpectedEndOf("DllConfig.lq_filter", err)
	}
	nf, err := r.ReadBits(8)
	if err != nil {
		return DllConfig{}, d7err.UnexpectedEndOf("DllConfig.nf_ctrl", err)
	}
	rxNf, err := r.ReadBits(8)
	if err != nil {
		return DllConfig{}, d7err.UnexpectedEndOf("DllConfig.rx_nf_method_parameter", err)
	}
	txNf, err := r.ReadBits(8)
	if err != nil {
		return DllConfig{}, d7err.UnexpectedEndOf("DllConfig.tx_nf_method_parameter", err)
	}
	return DllConfig{
		AC:                  uint8(ac),
		LqFilter:            uint8(lq),
		NfCtrl:              uint8(nf),
		RxNfMethodParameter: uint8(rxNf),
		TxNfMethodParameter: uint8(txNf),
	}, nil
}

// EncodeDllConfig writes d to w.
func EncodeDllConfig(w *bits.Writer, d DllConfig) error {
	if err := w.WriteBits(uint32(d.AC), 8); err != nil {
		return err
	}
	if err := w.WriteBits(0, 16); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(d.LqFilter), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(d.NfCtrl), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(d.RxNfMethodParameter), 8); err != nil {
		return err
	}
	return w.WriteBits(uint32(d.TxNfMethodParameter), 8)
}

// DllStatus is the DllStatus system file's body: the last receive's radio
// metrics plus cumulative scan counters.
type DllStatus struct {
	LastRxPacketLevel      uint8
	LastRxPacketLinkBudget uint8
	NoiseFloor             uint8
	ChannelHeader          physical.ChannelHeader
	ChannelIndex           uint16
	ScanTimeoutRatio       uint16
	ScanCount              uint32
	ScanTimeoutCount       uint32
}

// DecodeDllStatus reads a DllStatus from r.
func DecodeDllStatus(r *bits.Reader) (DllStatus, error) {
	level, err := r.ReadBits(8)
	if err != nil {
		return DllStatus{}, d7err.UnexpectedEndOf("DllStatus.last_rx_packet_level", err)
	}
	budget, err := r.ReadBits(8)
	if err != nil {
		return DllStatus{}, d7err.UnexpectedEndOf("DllStatus.last_rx_packet_link_budget", err)
	}
	noise, err := r.ReadBits(8)
	if err != nil {
		return DllStatus{}, d7err.UnexpectedEndOf("DllStatus.noise_floor", err)
	}
	ch, err := physical.Decode(r)
	if err != nil {
		return DllStatus{}, err
	}
	idx, err := r.ReadBits(16)
	if err != nil {
		return DllStatus{}, d7err.UnexpectedEndOf("DllStatus.channel_index", err)
	}
	ratio, err := r.ReadBits(16)
	if err != nil {
		return DllStatus{}, d7err.UnexpectedEndOf("DllStatus.scan_timeout_ratio", err)
	}
	count, err := r.ReadBits(32)
	if err != nil {
		return DllStatus{}, d7err.UnexpectedEndOf("DllStatus.scan_count", err)
	}
	timeoutCount, err := r.ReadBits(32)
	if err != nil {
		return DllStatus{}, d7err.UnexpectedEndOf("DllStatus.scan_timeout_count", err)
	}
	return DllStatus{
		LastRxPacketLevel:      uint8(level),
		LastRxPacketLinkBudget: uint8(budget),
		NoiseFloor:             uint8(noise),
		ChannelHeader:          ch,
		ChannelIndex:           uint16(idx),
		ScanTimeoutRatio:       uint16(ratio),
		ScanCount:              count,
		ScanTimeoutCount:       timeoutCount,
	}, nil
}

// EncodeDllStatus writes d to w.
func EncodeDllStatus(w *bits.Writer, d DllStatus) error {
	if err := w.WriteBits(uint32(d.LastRxPacketLevel), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(d.LastRxPacketLinkBudget), 8); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(d.NoiseFloor), 8); err != nil {
		return err
	}
	if err := physical.Encode(w, d.ChannelHeader); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(d.ChannelIndex), 16); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(d.ScanTimeoutRatio), 16); err != nil {
		return err
	}
	if err := w.WriteBits(d.ScanCount, 32); err != nil {
		return err
	}
	return w.WriteBits(d.ScanTimeoutCount, 32)
}

// PhyStatus is the PhyStatus system file's body: cumulative uptime/rx/tx
// timers plus a per-channel noise floor table.
type PhyStatus struct {
	UpTime        uint32
	RxTime        uint32
	TxTime        uint32
	TxDutyCycle   uint16
	ChannelStatus []physical.ChannelStatus
}

// DecodePhyStatus reads a PhyStatus from r.
func DecodePhyStatus(r *bits.Reader) (PhyStatus, error) {
	upTime, err := r.ReadBits(32)
	if err != nil {
		return PhyStatus{}, d7err.UnexpectedEndOf("PhyStatus.up_time", err)
	}
	rxTime, err := r.ReadBits(32)
	if err != nil {
		return PhyStatus{}, d7err.UnexpectedEndOf("PhyStatus.rx_time", err)
	}
	txTime, err := r.ReadBits(32)
	if err != nil {
		return PhyStatus{}, d7err.UnexpectedEndOf("PhyStatus.tx_time", err)
	}
	dutyCycle, err := r.ReadBits(16)
	if err != nil {
		return PhyStatus{}, d7err.UnexpectedEndOf("PhyStatus.tx_duty_cycle", err)
	}
	count, err := r.ReadBits(8)
	if err != nil {
		return PhyStatus{}, d7err.UnexpectedEndOf("PhyStatus.channel_status_list_length", err)
	}
	list := make([]physical.ChannelStatus, count)
	for i := range list {
		cs, err := physical.DecodeChannelStatus(r)
		if err != nil {
			return PhyStatus{}, err
		}
		list[i] = cs
	}
	return PhyStatus{
		UpTime:        upTime,
		RxTime:        rxTime,
		TxTime:        txTime,
		TxDutyCycle:   uint16(dutyCycle),
		ChannelStatus: list,
	}, nil
}

// EncodePhyStatus writes p to w.
func EncodePhyStatus(w *bits.Writer, p PhyStatus) error {
	if err := w.WriteBits(p.UpTime, 32); err != nil {
		return err
	}
	if err := w.WriteBits(p.RxTime, 32); err != nil {
		return err
	}
	if err := w.WriteBits(p.TxTime, 32); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(p.TxDutyCycle), 16); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(len(p.ChannelStatus)), 8); err != nil {
		return err
	}
	for _, cs := range p.ChannelStatus {
		if err := physical.EncodeChannelStatus(w, cs); err != nil {
			return err
		}
	}
	return nil
}

// SecurityKey is a network security key system file's body: a 128-bit
// (4x32-bit) key.
type SecurityKey struct {
	Key [4]uint32
}

// DecodeSecurityKey reads a SecurityKey from r.
func DecodeSecurityKey(r *bits.Reader) (SecurityKey, error) {
	var s SecurityKey
	for i := range s.Key {
		v, err := r.ReadBits(32)
		if err != nil {
			return SecurityKey{}, d7err.UnexpectedEndOf("SecurityKey.key", err)
		}
		s.Key[i] = v
	}
	return s, nil
}

// EncodeSecurityKey writes s to w.
func EncodeSecurityKey(w *bits.Writer, s SecurityKey) error {
	for _, v := range s.Key {
		if err := w.WriteBits(v, 32); err != nil {
			return err
		}
	}
	return nil
}

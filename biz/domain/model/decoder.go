package model

import (
	"bytes"
	"strings"
)

// Decoder 把上游事件流的字节块还原成一条条data负载
// 上游按行下发, 形如"data: {...}\n\n", 块边界和行边界无关, 跨块的半行留在缓冲里等下一块
type Decoder struct {
	buf []byte
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed 喂入一块字节, 返回其中完整行的data负载, 结束哨兵原样返回
func (d *Decoder) Feed(chunk []byte) (payloads []string) {
	d.buf = append(d.buf, chunk...)
	for {
		i := bytes.IndexByte(d.buf, '\n')
		if i < 0 {
			return payloads
		}
		line := d.buf[:i]
		d.buf = d.buf[i+1:]
		if p, ok := parseLine(line); ok {
			payloads = append(payloads, p)
		}
	}
}

// Rest 返回缓冲中未结束的半行, 流正常结束时应为空
func (d *Decoder) Rest() string {
	return string(d.buf)
}

// parseLine 只认data字段, 空行是事件边界, 注释行和其他字段直接丢弃
func parseLine(line []byte) (string, bool) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 || line[0] == ':' {
		return "", false
	}
	s := string(line)
	if !strings.HasPrefix(s, "data:") {
		return "", false
	}
	return strings.TrimPrefix(s[len("data:"):], " "), true
}

package termcap

// Descriptor is implemented by streams backed by an OS file descriptor,
// such as *os.File.
type Descriptor interface {
	Fd() uintptr
}

// EncodingDeclarer is implemented by streams that know their text encoding.
type EncodingDeclarer interface {
	Encoding() string
}

// invalidFd is what (*os.File).Fd returns for a nil or closed file.
const invalidFd = ^uintptr(0)

// DescriptorOf returns the file descriptor behind stream, if it has a usable one.
func DescriptorOf(stream any) (uintptr, bool) {
	d, ok := stream.(Descriptor)
	if !ok || d == nil {
		return 0, false
	}
	fd, ok := safeFd(d)
	if !ok || fd == invalidFd {
		return 0, false
	}
	return fd, true
}

// safeFd guards against Fd implementations that panic on a nil receiver.
func safeFd(d Descriptor) (fd uintptr, ok bool) {
	defer func() {
		if recover() != nil {
			fd, ok = 0, false
		}
	}()
	return d.Fd(), true
}

// DeclaredEncoding returns the encoding a stream declares, or "".
func DeclaredEncoding(stream any) string {
	if e, ok := stream.(EncodingDeclarer); ok && e != nil {
		return e.Encoding()
	}
	return ""
}
